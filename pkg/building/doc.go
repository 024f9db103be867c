// Package building draws layered building silhouettes onto a canvas.
//
// # Composer
//
// [Compose] turns a [Spec] into characters using a fixed four-step grammar:
//
//  1. Shaft: a windowed rectangle resting on the base row. Shafts at least 14
//     columns wide also get vertical ribs.
//  2. Setback: when requested, a seam line above the shaft and a narrower,
//     centered block stacked on it. A crown is added on top of setbacks wider
//     than 6 columns.
//  3. Crown: without a setback, a crown block sized from the shaft sits one
//     seam row above it.
//  4. Antenna: masts with a peak marker rise from the crown. Setback crowns get
//     two masts at one and two thirds of their width; plain crowns get one.
//
// Before drawing, the center column is clamped so the shaft stays two columns
// clear of the left edge and three of the right ([ClampCenter]). Everything
// else that falls off the canvas is clipped by the canvas itself.
//
// # Catalog
//
// [Catalog] lists the named presets. Each [Preset] is a fixed parameterization
// of the composer; compound presets (ziggurats, campuses, the industrial plant)
// call it several times at computed offsets. Presets carry no state, so the
// same preset can be drawn any number of times:
//
//	p, _ := building.Lookup(building.Ziggurat3)
//	p.Draw(cv, baseRow, 40)
//
// [Random] selects a preset uniformly from a caller-supplied random source so
// scenes stay reproducible for a given seed.
package building
