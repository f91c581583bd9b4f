package defi

import (
	"context"
	"fmt"
)

// TestCompile is a simple function to test compilation
func TestCompile() {
	fmt.Println("DeFi module compiles successfully!")
}

// TestService creates a basic service instance to test compilation
func TestService() error {
	ctx := context.Background()
	
	// This is just to test if the types compile
	_ = ctx
	
	return nil
}
