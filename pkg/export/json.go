package export

import (
	"encoding/json"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

type jsonComponent struct {
	Ref         string `json:"ref"`
	PartNumber  string `json:"part_number"`
	Description string `json:"description"`
}

type jsonNet struct {
	Name string          `json:"name"`
	Pins []schematic.Pin `json:"pins"`
}

// Document is the JSON form of a schematic.
type Document struct {
	Components []jsonComponent `json:"components"`
	Nets       []jsonNet       `json:"nets"`
}

// NewDocument snapshots sch. Collections are empty, never null.
func NewDocument(sch *schematic.Schematic) Document {
	doc := Document{
		Components: []jsonComponent{},
		Nets:       []jsonNet{},
	}
	for _, c := range sch.Components() {
		doc.Components = append(doc.Components, jsonComponent{
			Ref:         c.Ref,
			PartNumber:  c.PartNumber,
			Description: c.Description,
		})
	}
	for _, n := range sch.Nets() {
		doc.Nets = append(doc.Nets, jsonNet{Name: n.Name(), Pins: n.Pins()})
	}
	return doc
}

// JSON renders sch as indented JSON.
func JSON(sch *schematic.Schematic) ([]byte, error) {
	return json.MarshalIndent(NewDocument(sch), "", "  ")
}
