package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/animaut/pkg/fonts"
	"github.com/matzehuels/animaut/pkg/scene"
)

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(scn *scene.Scene, opts ...Option) ([]byte, error) {
	if err := checkScene(scn); err != nil {
		return nil, err
	}
	c := newConfig(opts...)
	vp := NewViewport(scn.FrameWidth, scn.FrameHeight, c.width, c.height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		c.width, c.height, c.width, c.height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", c.background)
	renderSVGGroup(&buf, vp, scn.Root, 1)
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderSVGGroup(buf *bytes.Buffer, vp Viewport, g *scene.Group, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(buf, "%s<g", indent)
	if g.ID != "" {
		fmt.Fprintf(buf, ` id="%s-%s"`, g.Role, escapeXML(g.ID))
	}
	if g.Role != "" {
		fmt.Fprintf(buf, ` class="%s"`, g.Role)
	}
	buf.WriteString(">\n")

	for _, child := range g.Children {
		switch d := child.(type) {
		case *scene.Group:
			renderSVGGroup(buf, vp, d, depth+1)
		case *scene.Circle:
			x, y := vp.Pixel(d.Center)
			fmt.Fprintf(buf, `%s  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
				indent, x, y, vp.Length(d.Radius), d.Color, vp.Length(scene.DefaultStrokeWidth))
		case *scene.Path:
			if len(d.Segments) == 0 {
				continue
			}
			fmt.Fprintf(buf, `%s  <path d="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round"/>`+"\n",
				indent, pathData(vp, d), d.Color, vp.Length(d.Width))
		case *scene.ArrowTip:
			var pts []string
			for _, p := range d.Vertices() {
				x, y := vp.Pixel(p)
				pts = append(pts, fmt.Sprintf("%.2f,%.2f", x, y))
			}
			fmt.Fprintf(buf, `%s  <polygon points="%s" fill="%s"/>`+"\n", indent, strings.Join(pts, " "), d.Color)
		case *scene.Text:
			x, y := vp.Pixel(d.Position)
			fmt.Fprintf(buf, `%s  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.2f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
				indent, x, y, escapeXML(fonts.FallbackFontFamily), vp.Length(d.Height()), d.Color, escapeXML(d.Content))
		}
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

// pathData builds the "d" attribute. A segment that does not start where the
// previous one ended opens a new sub-path.
func pathData(vp Viewport, p *scene.Path) string {
	var sb strings.Builder
	var last scene.Point
	for i, s := range p.Segments {
		if i == 0 || !s.Start.Near(last, 1e-9) {
			x, y := vp.Pixel(s.Start)
			fmt.Fprintf(&sb, "M%.2f %.2f", x, y)
		}
		switch s.Kind {
		case scene.SegmentCubic:
			x1, y1 := vp.Pixel(s.Control1)
			x2, y2 := vp.Pixel(s.Control2)
			x3, y3 := vp.Pixel(s.End)
			fmt.Fprintf(&sb, " C%.2f %.2f %.2f %.2f %.2f %.2f", x1, y1, x2, y2, x3, y3)
		default:
			x, y := vp.Pixel(s.End)
			fmt.Fprintf(&sb, " L%.2f %.2f", x, y)
		}
		last = s.End
	}
	return sb.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
