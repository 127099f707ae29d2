package deck

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

var spaces = regexp.MustCompile(`\s+`)

type logicalLine struct {
	number int
	text   string
}

// Parse reads a text deck.
func Parse(input string) (*Problem, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	problem := &Problem{}

	// Title or comment
	lineNo := 0
	if scanner.Scan() {
		lineNo++
		problem.Title = strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "*"))
	}

	var current *logicalLine
	flush := func() error {
		if current == nil {
			return nil
		}
		err := parseLine(problem, current)
		current = nil
		return err
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Inline comment
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}

		if len(line) == 0 || strings.HasPrefix(line, "*") {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		// Line continues
		if strings.HasPrefix(line, "+") {
			if current == nil {
				return nil, lineError(lineNo, "continuation without a preceding command")
			}
			current.text += " " + strings.TrimSpace(line[1:])
			continue
		}

		if err := flush(); err != nil {
			return nil, err
		}
		current = &logicalLine{number: lineNo, text: line}
	}
	if err := scanner.Err(); err != nil {
		return nil, numerr.Wrap(numerr.ConfigurationError, "deck", err, "reading deck")
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if err := problem.normalize(); err != nil {
		return nil, err
	}
	return problem, nil
}

func lineError(line int, format string, args ...any) error {
	return numerr.New(numerr.ConfigurationError, "deck", "line %d: "+format, append([]any{line}, args...)...)
}

func parseLine(problem *Problem, line *logicalLine) error {
	text := spaces.ReplaceAllString(line.text, " ")
	if !strings.HasPrefix(text, ".") {
		return lineError(line.number, "expected a dot command, got %q", text)
	}

	fields := strings.Fields(text)
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case ".method":
		if len(args) != 1 {
			return lineError(line.number, ".method takes one name")
		}
		problem.Method = args[0]

	case ".equation", ".eq":
		if len(args) == 0 {
			return lineError(line.number, ".equation is empty")
		}
		problem.Equation = strings.Join(args, " ")

	case ".decimals":
		if len(args) != 1 {
			return lineError(line.number, ".decimals takes one integer")
		}
		n, err := ParseCount(args[0])
		if err != nil {
			return lineError(line.number, "invalid decimals: %v", err)
		}
		problem.Decimals = &n

	case ".seeds":
		if len(args) != 2 {
			return lineError(line.number, ".seeds takes x0 and x1")
		}
		seeds := make([]float64, 2)
		for i, a := range args {
			v, err := ParseValue(a)
			if err != nil {
				return lineError(line.number, "invalid seed: %v", err)
			}
			seeds[i] = v
		}
		problem.Seeds = seeds

	case ".tol", ".tolerance":
		if len(args) != 1 {
			return lineError(line.number, ".tol takes one value")
		}
		v, err := ParseValue(args[0])
		if err != nil {
			return lineError(line.number, "invalid tolerance: %v", err)
		}
		problem.Tolerance = &v

	case ".maxiter":
		if len(args) != 1 {
			return lineError(line.number, ".maxiter takes one integer")
		}
		n, err := ParseCount(args[0])
		if err != nil {
			return lineError(line.number, "invalid max iterations: %v", err)
		}
		problem.MaxIter = &n

	case ".row":
		if len(args) < 2 {
			return lineError(line.number, ".row needs coefficients and a right-hand side")
		}
		row := make([]float64, len(args))
		for i, a := range args {
			v, err := ParseValue(a)
			if err != nil {
				return lineError(line.number, "invalid row entry: %v", err)
			}
			row[i] = v
		}
		problem.Rows = append(problem.Rows, row)

	case ".end":

	default:
		return lineError(line.number, "unsupported command: %s", fields[0])
	}
	return nil
}
