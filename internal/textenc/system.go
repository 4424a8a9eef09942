// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textenc

import (
	"os"
	"strings"
)

const defaultName = "utf-8"

// localeVars are consulted in POSIX precedence order.
var localeVars = []string{"LC_ALL", "LC_CTYPE", "LANG"}

// SystemName returns the character encoding of the invoking terminal,
// taken from the codeset of the first set locale variable
// ("en_US.ISO-8859-1" gives "ISO-8859-1"). Locales without a codeset,
// including "C" and "POSIX", give "utf-8". A nil getenv means os.Getenv.
func SystemName(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, key := range localeVars {
		v := getenv(key)
		if v == "" {
			continue
		}
		return codeset(v)
	}
	return defaultName
}

// codeset extracts the part of a locale between '.' and an optional '@'.
func codeset(locale string) string {
	_, cs, ok := strings.Cut(locale, ".")
	if !ok {
		return defaultName
	}
	cs, _, _ = strings.Cut(cs, "@")
	if cs == "" {
		return defaultName
	}
	return cs
}
