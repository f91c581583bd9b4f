package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategy_RequiredCapability(t *testing.T) {
	assert.Equal(t, CapabilityBundle, StrategyBundle.RequiredCapability())
	assert.Equal(t, CapabilityBundle, StrategyFlashLoan.RequiredCapability())
	assert.Equal(t, CapabilityMevProtect, StrategyMevProtected.RequiredCapability())
	assert.Equal(t, CapabilityStandardRpc, StrategyStandard.RequiredCapability())
}

func TestProvider_HasCapability(t *testing.T) {
	p := Provider{Capabilities: map[Capability]struct{}{CapabilityBundle: {}}}

	assert.True(t, p.HasCapability(CapabilityBundle))
	assert.False(t, p.HasCapability(CapabilityMevProtect))
}

func TestProvider_HasCapability_NilMapIsFalse(t *testing.T) {
	p := Provider{}
	assert.False(t, p.HasCapability(CapabilityStandardRpc))
}
