package service

import (
	"sort"
	"strconv"
	"strings"
)

// ComponerMesaKey builds the canonical billing-unit key for a table and its
// linked companions. Table numbers are sorted as strings so that joining
// {5,3} and {3,5} yields the same unit: "3+5".
func ComponerMesaKey(numeroMesa int, enlazadas []int) string {
	if len(enlazadas) == 0 {
		return strconv.Itoa(numeroMesa)
	}
	parts := []string{strconv.Itoa(numeroMesa)}
	for _, n := range enlazadas {
		if n != numeroMesa {
			parts = append(parts, strconv.Itoa(n))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, "+")
}

// EsCompuesta reports whether the key names a linked group of tables.
func EsCompuesta(mesaKey string) bool {
	return strings.Contains(baseMesaKey(mesaKey), "+")
}

// baseMesaKey strips a split suffix: "7-2" -> "7", "3+5-1" -> "3+5".
func baseMesaKey(mesaKey string) string {
	if i := strings.LastIndex(mesaKey, "-"); i > 0 {
		if _, err := strconv.Atoi(mesaKey[i+1:]); err == nil {
			return mesaKey[:i]
		}
	}
	return mesaKey
}

// siguienteSufijo scans the active keys sharing the source's base and returns
// the next free "-n" sub-account key, starting at 1.
func siguienteSufijo(base string, activas []string) string {
	max := 0
	prefix := base + "-"
	for _, k := range activas {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(k, prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return prefix + strconv.Itoa(max+1)
}
