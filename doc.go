/*
Copyright © 2024 the paleobath authors.
This file is part of paleobath.

paleobath is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

paleobath is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with paleobath.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package paleobath reconstructs the history of water depth (or tectonic
// subsidence) at a drill site, or at an arbitrary point of present-day
// submerged crust, by combining porosity-driven sediment decompaction with
// a tectonic subsidence model that differs for oceanic and continental
// crust, plus optional corrections for dynamic topography and eustatic sea
// level.
//
// The two primary entry points are Backtrack, which solves for paleo water
// depth given a subsidence model, and Backstrip, which solves for tectonic
// subsidence given recorded paleo water depths. Both operate on a Well
// built from a Registry of Lithologies and a stratigraphic column of
// StratUnits.
package paleobath
