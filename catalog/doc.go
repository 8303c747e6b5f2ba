// SPDX-License-Identifier: MIT

// Package catalog is the static, process-wide table of the 230 space-group
// types in their 530 Hall settings, together with the classification data
// the classifier matches against.
//
// What:
//
//   - HallEntry: one Hall setting (Hall number, space-group number,
//     arithmetic class, setting choice, Hall symbol, Hermann-Mauguin
//     symbol, centering). Loaded once from the embedded data/hall.yaml.
//   - HallSymbol: parser for Hall symbols and the group they generate
//     (conventional coset representatives, centering translations and the
//     operations in the primitive basis).
//   - Centering, GeometricCrystalClass, CrystalSystem, LatticeSystem,
//     BravaisClass, CrystalFamily: closed enumerations with their data.
//   - ArithmeticClass: the 73 arithmetic crystal classes and their
//     point-group representatives.
//   - Setting: the precedence rule selecting Hall numbers per type.
//   - Wyckoffs: Wyckoff tables of a setting. The orbits are derived from
//     the operations; letters, oriented site-symmetry symbols and
//     coordinates come from the embedded International Tables data where
//     the setting is tabulated (TabulatedHallNumbers).
//   - ParseWyckoffCoordinates: the "x,2x,1/4" coordinate shorthand.
//
// Concurrency:
//
//   - Entries are decoded on first use under sync.Once; derived tables are
//     computed once per Hall number and cached. Every exported value is
//     read-only after construction and safe for concurrent use.
//
// Lookups are by integer id (Hall number, space-group number, arithmetic
// number); entries never reference each other.
package catalog
