package worksheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

// LegacyDrawing is a VML part backing comment boxes and form controls. It
// is not decoded on load; the markup is read on demand.
type LegacyDrawing struct {
	Path     string
	Ref      packaging.PartRef
	Rels     packaging.Relationships
	Children []LegacyChild
}

// LegacyChild is a part the VML drawing links to, usually an EMF preview.
type LegacyChild struct {
	Rel packaging.Relationship
	Ref packaging.PartRef
}

// Target returns the archive path of the linked part.
func (c LegacyChild) Target() string {
	return c.Ref.Path
}

// Bytes reads the raw VML markup.
func (d *LegacyDrawing) Bytes() ([]byte, error) {
	return d.Ref.Bytes()
}

// Tree parses the VML markup. VML is frequently not well formed, so the
// parse is lenient.
func (d *LegacyDrawing) Tree() (*schema.Node, error) {
	data, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	n, err := schema.ParseLenient(data)
	if err != nil {
		return nil, fmt.Errorf("legacy drawing %s: %w", d.Path, err)
	}
	return n, nil
}

// LegacyShape summarises one v:shape of a legacy drawing.
type LegacyShape struct {
	ID string
	// ObjectType is the x:ClientData kind: Note, Button, Checkbox, ...
	ObjectType string
	// Row and Column are 0-based, -1 when the shape is not tied to a cell.
	Row, Column int
	Hidden      bool
}

// Shapes lists the shapes of the drawing that carry client data.
func (d *LegacyDrawing) Shapes() ([]LegacyShape, error) {
	root, err := d.Tree()
	if err != nil {
		return nil, err
	}
	var out []LegacyShape
	root.Walk(func(n *schema.Node) bool {
		if n.Name.Local != "shape" {
			return true
		}
		cd := n.Find("ClientData")
		if cd == nil {
			return false
		}
		s := LegacyShape{
			ID:         n.AttrValue("id"),
			ObjectType: cd.AttrValue("ObjectType"),
			Row:        intChild(cd, "Row"),
			Column:     intChild(cd, "Column"),
		}
		s.Hidden = strings.Contains(strings.ReplaceAll(n.AttrValue("style"), " ", ""), "visibility:hidden")
		out = append(out, s)
		return false
	})
	return out, nil
}

func intChild(n *schema.Node, local string) int {
	c := n.Find(local)
	if c == nil {
		return -1
	}
	i, err := strconv.Atoi(strings.TrimSpace(c.Text))
	if err != nil {
		return -1
	}
	return i
}
