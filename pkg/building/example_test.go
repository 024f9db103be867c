package building_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/canvas"
)

func ExampleCompose() {
	cv := canvas.New(12, 12, canvas.Blank)
	building.Compose(cv, building.Spec{
		BaseRow: 12,
		Center:  6,
		ShaftW:  6,
		ShaftH:  8,
		Crown:   true,
	})
	for _, line := range cv.Lines() {
		fmt.Println(strings.TrimRight(line, " "))
	}
	// Output:
	//    |====|
	//    |====|
	//    ------
	//    |====|
	//    |####|
	//    |.##.|
	//    |####|
	//    |.##.|
	//    |####|
	//    |.##.|
	//    |====|
}

func ExampleLookup() {
	p, ok := building.Lookup(building.Needle)
	fmt.Println(ok, p.Name)
	// Output: true needle
}
