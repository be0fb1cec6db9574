package utils

import "math"

const lbPerKg = 2.2046226218

func KgToLb(kg float64) float64 { return kg * lbPerKg }

func LbToKg(lb float64) float64 { return lb / lbPerKg }

// CmToFtIn splits a height into whole feet and remaining inches.
// Inches are rounded to one decimal; 12.0 carries into the next foot.
func CmToFtIn(cm float64) (int, float64) {
    totalIn := cm / 2.54
    ft := int(totalIn / 12)
    in := math.Round((totalIn-float64(ft)*12)*10) / 10
    if in >= 12 {
        ft++
        in = 0
    }
    return ft, in
}

func FtInToCm(ft int, in float64) float64 {
    return (float64(ft)*12 + in) * 2.54
}

// Round1 rounds to one decimal place, used when echoing converted values.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }
