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

// Command paleobath is a command-line interface to the paleobath
// reconstruction engine.
package main

import (
	"fmt"
	"os"

	"github.com/earthbyte-go/paleobath/paleobathutil"
)

func main() {
	if err := paleobathutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
