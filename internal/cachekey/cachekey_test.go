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

package cachekey

import (
	"math"
	"testing"
)

func TestKeyIsDeterministic(t *testing.T) {
	a := Key(1, 2, 3)
	b := Key(1, 2, 3)
	if a != b {
		t.Errorf("Key is not deterministic: %q != %q", a, b)
	}
}

func TestKeyDistinguishesDifferentRequests(t *testing.T) {
	a := Key(1, 2, 3)
	b := Key(1, 2, 4)
	if a == b {
		t.Errorf("expected different keys for different requests, both = %q", a)
	}
}

func TestKeyIsDeterministicForNaN(t *testing.T) {
	a := Key(math.NaN(), 2, 3)
	b := Key(math.NaN(), 2, 3)
	if a != b {
		t.Errorf("Key is not deterministic for NaN-bearing input: %q != %q", a, b)
	}
}
