package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes meshes as one Wavefront OBJ document, translating each mesh
// by its origin. Every surface becomes a group named after its material so
// the output can be inspected in any model viewer.
func WriteOBJ(w io.Writer, meshes ...*Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# voxelworld chunk export")

	next := 1
	for mi, m := range meshes {
		if m == nil || m.Empty() {
			continue
		}
		for _, s := range m.Surfaces {
			fmt.Fprintf(bw, "g chunk%d_%s\n", mi, s.Material)
			fmt.Fprintf(bw, "usemtl %s\n", s.Material)
			for _, p := range s.Positions {
				q := p.Add(m.Origin)
				fmt.Fprintf(bw, "v %g %g %g\n", q[0], q[1], q[2])
			}
			for _, uv := range s.UVs {
				fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
			}
			for i := 0; i+2 < len(s.Indices); i += 3 {
				a := next + int(s.Indices[i])
				b := next + int(s.Indices[i+1])
				c := next + int(s.Indices[i+2])
				fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
			}
			next += len(s.Positions)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}
