package model

import (
	"fmt"
	"strconv"
)

// Snowflake is Discord's 64-bit entity identifier. Wire formats carry it as a
// numeric string; comparisons are plain integer comparisons, so IDs of the
// same kind are totally ordered by creation time.
type Snowflake = uint64

// ParseSnowflake parses a numeric-string Snowflake ID.
func ParseSnowflake(s string) (Snowflake, error) {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse Snowflake ID string: %w", err)
	}
	return val, nil
}

// MustParseSnowflake parses a numeric-string Snowflake ID and panics if the
// string is malformed.
func MustParseSnowflake(s string) Snowflake {
	val, err := ParseSnowflake(s)
	if err != nil {
		panic(err)
	}
	return val
}

// FormatSnowflake formats a Snowflake ID back into its wire representation.
func FormatSnowflake(s Snowflake) string {
	return strconv.FormatUint(s, 10)
}

// snowflakeOrZero parses an optional Snowflake field, mapping the empty
// string to zero. API payloads omit foreign IDs for unscoped entities.
func snowflakeOrZero(s string) Snowflake {
	if s == "" {
		return 0
	}
	return MustParseSnowflake(s)
}
