package geom

import (
	"strings"
	"testing"
)

const sampleKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document><Folder><Placemark><name>lake</name>
<MultiGeometry>
<Polygon>
  <outerBoundaryIs><LinearRing><coordinates>0,0,0 4,0,0 4,4,0 0,4,0 0,0,0</coordinates></LinearRing></outerBoundaryIs>
  <innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,1</coordinates></LinearRing></innerBoundaryIs>
</Polygon>
<Polygon>
  <outerBoundaryIs><LinearRing><coordinates>10,10 11,10 11,11</coordinates></LinearRing></outerBoundaryIs>
</Polygon>
</MultiGeometry>
</Placemark></Folder></Document></kml>`

func TestReadKMLPolygons(t *testing.T) {
	got, err := ReadKMLPolygons(strings.NewReader(sampleKML))
	if err != nil {
		t.Fatalf("ReadKMLPolygons: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rings, want 3", len(got))
	}
	if got[0].Hole || !got[1].Hole || got[2].Hole {
		t.Errorf("hole flags = %v %v %v", got[0].Hole, got[1].Hole, got[2].Hole)
	}
	last := got[2].Ring[len(got[2].Ring)-1]
	if last != (Point{10, 10}) {
		t.Errorf("open ring not closed: %v", got[2].Ring)
	}
}
