// Package renderer draws levels as colored text for the terminal.
package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/generator"
)

// Icon constants
const (
	IconWall     = "#"
	IconFloor    = "."
	IconDoor     = "+"
	IconEntrance = "<"
	IconExit     = ">"
	IconVoid     = " "
)

var (
	ColorWall     color.Style
	ColorFloor    color.Style
	ColorDoor     color.Style
	ColorEntrance color.Style
	ColorExit     color.Style
	ColorAction   color.Style
	ColorTitle    color.Style
	ColorSubtle   color.Style
	ColorWarning  color.Style

	regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:.%\-]+)}`)
)

func init() {
	InitColors()
}

// InitColors initializes the color styles
func InitColors() {
	ColorWall = color.Style{color.FgGray}
	ColorFloor = color.Style{color.FgDarkGray}
	ColorDoor = color.Style{color.FgYellow, color.OpBold}
	ColorEntrance = color.Style{color.FgGreen, color.OpBold}
	ColorExit = color.Style{color.FgRed, color.OpBold}
	ColorAction = color.Style{color.FgMagenta}
	ColorTitle = color.Style{color.FgCyan, color.OpBold}
	ColorSubtle = color.Style{color.FgGray, color.OpBold}
	ColorWarning = color.Style{color.FgRed}
}

// SetColor turns ANSI output on or off for every style
func SetColor(on bool) {
	color.Enable = on
}

// FormatString formats a string with special markup: GT{KEY} is translated,
// TITLE{..}, ACTION{..} and WARN{..} are colored.
func FormatString(msg string, a ...any) string {
	ret := fmt.Sprintf(msg, a...)

	for _, match := range regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = Translate(operand)
		case "TITLE":
			val = ColorTitle.Sprint(operand)
		case "ACTION":
			val = ColorAction.Sprint(operand)
		case "WARN":
			val = ColorWarning.Sprint(operand)
		default:
			continue
		}
		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// noArgs asks gotext for the bare catalog entry
var noArgs []any

// Translate returns the catalog entry for key with its verbs filled from
// args. Unknown keys come back unchanged.
func Translate(key string, args ...any) string {
	msg := gotext.Get(key, noArgs...)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// PrintString prints a formatted string
func PrintString(msg string, a ...any) {
	fmt.Print(FormatString(msg, a...))
}

// Marker overrides the icon of one cell, e.g. to show the entrance
type Marker struct {
	At    world.Point
	Icon  string
	Style color.Style
}

// Endpoints returns entrance and exit markers for a level, or nothing when
// the level has no open cell
func Endpoints(l *generator.Level) []Marker {
	entrance, exit, ok := l.Endpoints()
	if !ok {
		return nil
	}
	return []Marker{
		{At: entrance, Icon: IconEntrance, Style: ColorEntrance},
		{At: exit, Icon: IconExit, Style: ColorExit},
	}
}

// RenderCell returns the string representation of a cell value
func RenderCell(c world.Cell) string {
	switch c {
	case world.Floor:
		return ColorFloor.Sprint(IconFloor)
	case world.Door:
		return ColorDoor.Sprint(IconDoor)
	case world.Wall:
		return ColorWall.Sprint(IconWall)
	default:
		return IconVoid
	}
}

// RenderLevel draws the top left maxW x maxH window of the level, one line
// per row. Markers win over the cell underneath.
func RenderLevel(l *generator.Level, maxW, maxH int, markers ...Marker) string {
	over := make(map[world.Point]Marker, len(markers))
	for _, m := range markers {
		over[m.At] = m
	}

	w, h := min(l.Width, maxW), min(l.Height, maxH)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m, ok := over[world.Pt(x, y)]; ok {
				sb.WriteString(m.Style.Sprint(m.Icon))
				continue
			}
			sb.WriteString(RenderCell(l.Grid.At(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PrintLevel renders a level with its entrance and exit to stdout
func PrintLevel(l *generator.Level, maxW, maxH int) {
	fmt.Print(RenderLevel(l, maxW, maxH, Endpoints(l)...))
}
