package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestKgLbRoundTrip(t *testing.T) {
    assert.InDelta(t, 220.462, KgToLb(100), 0.001)
    assert.InDelta(t, 100, LbToKg(KgToLb(100)), 1e-9)
    assert.InDelta(t, 74.843, LbToKg(165), 0.001)
}

func TestCmToFtIn(t *testing.T) {
    ft, in := CmToFtIn(180)
    assert.Equal(t, 5, ft)
    assert.Equal(t, 10.9, in)

    ft, in = CmToFtIn(182.88) // exactly 72 inches
    assert.Equal(t, 6, ft)
    assert.Equal(t, 0.0, in)
}

func TestCmToFtInCarriesRoundedInches(t *testing.T) {
    // 71.96 inches rounds to 5'12.0 and must carry to 6'0.
    ft, in := CmToFtIn(182.78)
    assert.Equal(t, 6, ft)
    assert.Equal(t, 0.0, in)
}

func TestFtInToCm(t *testing.T) {
    assert.InDelta(t, 177.8, FtInToCm(5, 10), 1e-9)
    assert.InDelta(t, 152.4, FtInToCm(5, 0), 1e-9)
}

func TestRound1(t *testing.T) {
    assert.Equal(t, 74.8, Round1(74.8427))
    assert.Equal(t, 75.0, Round1(74.96))
}
