// Package geom defines the placed geometry a schematic is made of.
//
// # Elements
//
// [Element] is a closed union. Only the types in this package implement it:
//
//   - [Point]: a junction dot
//   - [Line]: a straight wire or stroke between two positions
//   - [Circle], [Text], [Polygon]: decoration
//   - [Group]: an ordered bundle of elements
//   - [Symbol]: a placed component with a label and named [Port] values
//   - [Port]: a connection point with a position and outward direction
//
// # Visitors
//
// Transforms are written as a [Visitor], which must handle every element
// type. Adding a new element type adds a method to Visitor, so every
// transform in the tree fails to compile until it handles the newcomer.
//
//	moved := geom.Translate(sym, 50, 0)
//	turned := geom.Rotate(sym, 90, geom.Vec{})
//
// Coordinates follow SVG conventions: x grows right, y grows down, and a
// positive rotation angle turns clockwise on screen.
package geom
