package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/mangascale"
)

// Output name suffixes. Each records the parameters that produced the file.

func blurSuffix(radius float64) string {
	return fmt.Sprintf("_blur_%.2f", radius)
}

func dotGainSuffix(strength, spread int, factor float64) string {
	return fmt.Sprintf("_dotgain_St%d_Sp%d_Sc%.2f", strength, spread, factor)
}

func scaleSuffix(factor float64, dg *mangascale.DotGainParams) string {
	f := strconv.FormatFloat(factor, 'g', -1, 64)
	if dg == nil {
		return "_down_" + f + "_nodg"
	}
	return fmt.Sprintf("_down_%s_dg_st%d_sp%d", f, dg.Strength, dg.Spread)
}

func resizeSuffix(width, height int) string {
	switch {
	case height == 0:
		return fmt.Sprintf("_down_w%d", width)
	case width == 0:
		return fmt.Sprintf("_down_h%d", height)
	default:
		return fmt.Sprintf("_down_%dx%d", width, height)
	}
}

// listFlag is a flag.Value holding a comma-separated list. The first Set
// replaces the default values; repeated flags append.
type listFlag[T any] struct {
	values []T
	set    bool
	parse  func(string) (T, error)
	format func(T) string
}

func newFloatList(def ...float64) *listFlag[float64] {
	return &listFlag[float64]{
		values: def,
		parse:  func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
		format: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
	}
}

func newIntList(def ...int) *listFlag[int] {
	return &listFlag[int]{
		values: def,
		parse:  strconv.Atoi,
		format: strconv.Itoa,
	}
}

func (l *listFlag[T]) String() string {
	if l == nil || l.format == nil {
		return ""
	}
	parts := make([]string, len(l.values))
	for i, v := range l.values {
		parts[i] = l.format(v)
	}
	return strings.Join(parts, ",")
}

func (l *listFlag[T]) Set(s string) error {
	if !l.set {
		l.values = nil
		l.set = true
	}
	for _, part := range strings.Split(s, ",") {
		v, err := l.parse(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		l.values = append(l.values, v)
	}
	return nil
}
