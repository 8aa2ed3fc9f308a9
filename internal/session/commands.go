package session

import (
	"errors"
	"strconv"
	"strings"

	"github.com/iandyone/minesweeper-rss/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("invalid number of arguments")
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get state
	"o": 2, // open x y
	"f": 2, // flag x y
}

func parseXY(twoStrings []string) (p mines.Point, err error) {
	if p.X, err = strconv.Atoi(twoStrings[0]); err != nil {
		return p, errors.New("first argument must be an int")
	}
	if p.Y, err = strconv.Atoi(twoStrings[1]); err != nil {
		return p, errors.New("second argument must be an int")
	}
	return p, nil
}

// Execute runs a single text command such as "o 3 4".
func (s *Session) Execute(c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return ErrBadArguments
	}
	switch parts[0] {
	case "g":
		return nil
	case "o":
		p, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		_, err = s.Open(p)
		return err
	case "f":
		p, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		_, err = s.Mark(p)
		return err
	}
	return ErrUnknownCommand
}
