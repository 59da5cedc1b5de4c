package render

import (
	"math"
	"strings"
)

// Color tokens understood by the terminal renderer
const (
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorGray   = "gray"
)

// LabelInfo is the display form of a verdict label
type LabelInfo struct {
	Display string
	Color   string
}

// labelTable maps every label the backend is known to emit. Lookups are
// case-insensitive; anything outside the table falls back to unknownLabel.
var labelTable = map[string]LabelInfo{
	"valid":        {Display: "Valid", Color: ColorGreen},
	"true":         {Display: "True", Color: ColorGreen},
	"hoax":         {Display: "Hoax", Color: ColorRed},
	"false":        {Display: "False", Color: ColorRed},
	"uncertain":    {Display: "Uncertain", Color: ColorYellow},
	"mixture":      {Display: "Mixture", Color: ColorYellow},
	"misleading":   {Display: "Misleading", Color: ColorYellow},
	"inconclusive": {Display: "Inconclusive", Color: ColorYellow},
	"unverified":   {Display: "Unverified", Color: ColorGray},
	"unsupported":  {Display: "Unsupported", Color: ColorGray},
}

var unknownLabel = LabelInfo{Display: "Unknown", Color: ColorGray}

// Label resolves a verdict label to its display form. It is total: any
// input, including empty or future label strings, yields a valid LabelInfo.
func Label(label string) LabelInfo {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if info, ok := labelTable[normalized]; ok {
		return info
	}
	return unknownLabel
}

// Confidence converts a [0,1] confidence to a rounded integer percentage.
// Out-of-range inputs pass through unclamped, matching backend contract.
func Confidence(confidence float64) int {
	return int(math.Round(confidence * 100))
}
