package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type TileStatus int8

const (
	Hidden TileStatus = iota
	Number
	Marked
	Mine
	MarkedWrong
	/*
	 * Number and MarkedWrong carry the tile's adjacent mine count.
	 *
	 * Number, Mine and MarkedWrong are terminal: once a tile gets
	 * there it stays for the rest of the game. MarkedWrong is only
	 * produced by LossSweep.
	 */
)

var tileStatusNames = [...]string{
	Hidden:      "hidden",
	Number:      "number",
	Marked:      "marked",
	Mine:        "mine",
	MarkedWrong: "marked-wrong",
}

func (s TileStatus) String() string {
	if 0 <= s && int(s) < len(tileStatusNames) {
		return tileStatusNames[s]
	}
	return "TileStatus(" + strconv.Itoa(int(s)) + ")"
}

func ParseTileStatus(name string) (TileStatus, error) {
	for s, n := range tileStatusNames {
		if n == name {
			return TileStatus(s), nil
		}
	}
	return Hidden, fmt.Errorf("unknown tile status %q", name)
}

// [TileStatus] implements [encoding.TextMarshaler]
func (s TileStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TileStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseTileStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Tile struct {
	Pos      Point
	Mine     bool
	Status   TileStatus
	Adjacent int
}

// Mark flags a hidden tile.
func (t *Tile) Mark() bool {
	if t.Status != Hidden {
		return false
	}
	t.Status = Marked
	return true
}

// Unmark removes the flag from a marked tile.
func (t *Tile) Unmark() bool {
	if t.Status != Marked {
		return false
	}
	t.Status = Hidden
	return true
}

func (t Tile) Symbol() string {
	switch t.Status {
	case Hidden:
		return "#"
	case Marked:
		return "F"
	case Mine:
		return "*"
	case MarkedWrong:
		return "X"
	case Number:
		if t.Adjacent == 0 {
			return "."
		}
		return strconv.Itoa(t.Adjacent)
	default:
		return "!"
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Height {
		for x := range b.Width {
			fmt.Fprint(&sb, b.tiles[y*b.Width+x].Symbol()+" ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
