// Package tariff contains the versioned zone tariff table and the pricing
// derivation rules. Each version ("indice") holds per-zone base amounts and
// prestation percentages; the prestation and expedition amounts are always
// derived from those two figures, never stored independently.
package tariff
