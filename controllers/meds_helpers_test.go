package controllers

import (
    "regexp"
    "testing"

    "github.com/stretchr/testify/assert"
    "nutrilog/backend/models"
)

func TestParseDay(t *testing.T) {
    d, err := parseDay("2026-08-27")
    assert.NoError(t, err)
    assert.Equal(t, "2026-08-27", d)

    _, err = parseDay("27/08/2026")
    assert.Error(t, err)
    _, err = parseDay("")
    assert.Error(t, err)
    _, err = parseDay("2026-13-01")
    assert.Error(t, err)
}

func TestValidateMedEntry(t *testing.T) {
    assert.NoError(t, validateMedEntry("Vitamin D3", f64p(2000), strp("IU")))
    assert.NoError(t, validateMedEntry("Melatonin", nil, nil))

    assert.Error(t, validateMedEntry("", nil, nil))
    assert.Error(t, validateMedEntry("   ", nil, nil))
    long := make([]byte, 121)
    for i := range long {
        long[i] = 'a'
    }
    assert.Error(t, validateMedEntry(string(long), nil, nil))
    assert.Error(t, validateMedEntry("Zinc", f64p(0), nil))
    assert.Error(t, validateMedEntry("Zinc", f64p(-5), nil))
    assert.Error(t, validateMedEntry("Zinc", f64p(25), strp("handfuls")))
}

func TestMergeChipsRecentsFirstAndDeduped(t *testing.T) {
    recents := []models.Chip{
        {Name: "Creatine", DoseAmount: f64p(10), DoseUnit: strp("g"), Source: "recent"},
        {Name: "Ashwagandha", DoseAmount: f64p(600), DoseUnit: strp("mg"), Source: "recent"},
    }
    out := mergeChips(recents, starterChips, 12)
    assert.Equal(t, "Creatine", out[0].Name)
    assert.Equal(t, "recent", out[0].Source)
    // the recent creatine dose wins over the starter preset
    assert.Equal(t, 10.0, *out[0].DoseAmount)
    names := map[string]int{}
    for _, ch := range out {
        names[ch.Name]++
    }
    assert.Equal(t, 1, names["Creatine"])
    assert.Equal(t, len(recents)+len(starterChips)-1, len(out))
}

func TestMergeChipsCap(t *testing.T) {
    out := mergeChips(nil, starterChips, 3)
    assert.Len(t, out, 3)
}

func TestMergeChipsSkipsBlankNames(t *testing.T) {
    out := mergeChips([]models.Chip{{Name: "  "}}, starterChips, 12)
    assert.Len(t, out, len(starterChips))
}

func TestNewCaseRef(t *testing.T) {
    re := regexp.MustCompile(`^[0-9A-F]{8}$`)
    seen := map[string]bool{}
    for i := 0; i < 50; i++ {
        ref := newCaseRef()
        assert.Regexp(t, re, ref)
        seen[ref] = true
    }
    assert.Greater(t, len(seen), 1)
}
