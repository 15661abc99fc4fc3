package arger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nulifyer/slnutf8/logger"

	xterm "golang.org/x/term"
)

var registeredFlags = make(map[string]IFlag)
var aliasToFlag = make(map[string]IFlag)

// ErrHelp is returned by ParseArgs when -h or --help is present.
var ErrHelp = errors.New("help requested")

// -------------------------------
// IFlag - interface for all flag types
// --------------------------------

type IFlag interface {
	GetName() string
	GetDescription() string
	GetRequired() bool
	GetAliases() []string
	GetPositional() bool
	GetFlagType() string
	GetDefault() any
	GetExpectedValues() []any
	isSwitch() bool
	parse(value string) (IParsedFlag, error)
	parseSwitch() IParsedFlag
	defaultParsed() IParsedFlag
}

// -------------------------------
// IParsedFlag - interface for all parsed flag types
// --------------------------------

type IParsedFlag interface {
	GetValue() any
	GetFlag() IFlag
}

// -------------------------------
// Flag - generic flag type
// --------------------------------

// Flag describes one command line option. A Flag[bool] without a Parser is a
// switch: its presence sets it to true and it consumes no value.
type Flag[T any] struct {
	Name           string
	Description    string
	Required       bool
	Default        *T
	DefaultFunc    func() T
	Aliases        []string
	Positional     bool
	ExpectedValues []T
	Parser         func(string) (T, error)
}

func (f Flag[T]) GetName() string        { return f.Name }
func (f Flag[T]) GetDescription() string { return f.Description }
func (f Flag[T]) GetRequired() bool      { return f.Required }
func (f Flag[T]) GetAliases() []string   { return f.Aliases }
func (f Flag[T]) GetPositional() bool    { return f.Positional }
func (f Flag[T]) GetFlagType() string    { return fmt.Sprintf("%T", *new(T)) }
func (f Flag[T]) GetDefault() any {
	if f.Default != nil {
		return *f.Default
	}
	if f.DefaultFunc != nil {
		return f.DefaultFunc()
	}
	return nil
}
func (f Flag[T]) GetExpectedValues() []any {
	out := make([]any, len(f.ExpectedValues))
	for i, v := range f.ExpectedValues {
		out[i] = v
	}
	return out
}

func (f Flag[T]) isSwitch() bool {
	_, ok := any(*new(T)).(bool)
	return ok && f.Parser == nil
}

func (f Flag[T]) parse(value string) (IParsedFlag, error) {
	var v T
	switch {
	case f.Parser != nil:
		parsed, err := f.Parser(value)
		if err != nil {
			return nil, fmt.Errorf("could not parse value %s: %w", value, err)
		}
		v = parsed
	default:
		if sp, ok := any(&v).(*string); ok {
			*sp = value
		} else if _, err := fmt.Sscan(value, &v); err != nil {
			return nil, fmt.Errorf("could not parse value %s", value)
		}
	}

	// validate expected values
	if len(f.ExpectedValues) > 0 {
		valid := false
		for _, ev := range f.ExpectedValues {
			if strings.EqualFold(fmt.Sprintf("%v", ev), fmt.Sprintf("%v", v)) {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("invalid value %s", value)
		}
	}

	return ParsedFlag[T]{flag: &f, Value: v}, nil
}

func (f Flag[T]) parseSwitch() IParsedFlag {
	var v T
	if bp, ok := any(&v).(*bool); ok {
		*bp = true
	}
	return ParsedFlag[T]{flag: &f, Value: v}
}

func (f Flag[T]) defaultParsed() IParsedFlag {
	if f.Default != nil {
		return ParsedFlag[T]{flag: &f, Value: *f.Default}
	}
	if f.DefaultFunc != nil {
		return ParsedFlag[T]{flag: &f, Value: f.DefaultFunc()}
	}
	return nil
}

// -------------------------------
// ParsedFlag - generic parsed flag type
// --------------------------------

type ParsedFlag[T any] struct {
	flag  *Flag[T]
	Value T
}

func (pf ParsedFlag[T]) GetValue() any  { return pf.Value }
func (pf ParsedFlag[T]) GetFlag() IFlag { return pf.flag }
func (pf ParsedFlag[T]) As() T          { return pf.Value }

// -------------------------------
// Built-in flag constructors
// --------------------------------

func StringFlag(name string) Flag[string] {
	return Flag[string]{
		Name:   name,
		Parser: func(s string) (string, error) { return s, nil },
	}
}

func BoolFlag(name string) Flag[bool] {
	return Flag[bool]{
		Name: name,
		Parser: func(s string) (bool, error) {
			switch strings.ToLower(s) {
			case "true", "1", "yes":
				return true, nil
			case "false", "0", "no":
				return false, nil
			default:
				return false, fmt.Errorf("invalid bool value: %s", s)
			}
		},
	}
}

func SwitchFlag(name string) Flag[bool] {
	return Flag[bool]{Name: name}
}

// -------------------------------
// Register & Parse
// --------------------------------

// RegisterFlag adds f to the global registry. Misconfigured flags are a
// programming error and terminate the process.
func RegisterFlag(f IFlag) {
	if err := register(f); err != nil {
		logger.Fatal("error with flag %s (%s): %v", f.GetName(), strings.Join(f.GetAliases(), ", "), err)
	}
}

func register(f IFlag) error {
	if err := validateFlag(f); err != nil {
		return err
	}
	for _, alias := range f.GetAliases() {
		if _, exists := aliasToFlag[alias]; exists {
			return fmt.Errorf("alias %s is already registered for another flag", alias)
		}
		if alias == "--help" || alias == "-h" {
			return fmt.Errorf("alias %s is reserved for help flag", alias)
		}
		if !strings.HasPrefix(alias, "-") {
			return fmt.Errorf("alias %s must start with - or -- per convention", alias)
		}
	}

	registeredFlags[f.GetName()] = f
	for _, alias := range f.GetAliases() {
		aliasToFlag[alias] = f
	}
	return nil
}

func validateFlag(f IFlag) error {
	if f.GetName() == "" {
		return errors.New("flag name cannot be empty")
	}
	if _, exists := registeredFlags[f.GetName()]; exists {
		return fmt.Errorf("flag name %s is already registered", f.GetName())
	}
	if f.GetRequired() && f.GetDefault() != nil {
		return fmt.Errorf("flag --%s cannot be required and have a default value", f.GetName())
	}
	if len(f.GetAliases()) == 0 {
		return fmt.Errorf("flag --%s must have at least one alias", f.GetName())
	}
	return nil
}

// Reset clears the registry.
func Reset() {
	registeredFlags = make(map[string]IFlag)
	aliasToFlag = make(map[string]IFlag)
}

// Parse parses os.Args against the registered flags. Help prints usage and
// exits 0; any usage error prints usage and exits 1.
func Parse() map[string]IParsedFlag {
	parsed, err := ParseArgs(os.Args[1:])
	if errors.Is(err, ErrHelp) {
		PrintUsage(os.Stdout)
		os.Exit(0)
	}
	if err != nil {
		logger.Error("%v", err)
		PrintUsage(os.Stderr)
		os.Exit(1)
	}
	return parsed
}

// ParseArgs parses args against the registered flags, applying defaults and
// checking required flags.
func ParseArgs(args []string) (map[string]IParsedFlag, error) {
	var (
		parsedFlags      = make(map[string]IParsedFlag)
		positionalValues []string
		lastFlag         IFlag
	)

	for _, arg := range args {
		switch {
		case arg == "--help" || arg == "-h":
			return nil, ErrHelp
		case lastFlag != nil:
			pf, err := lastFlag.parse(arg)
			if err != nil {
				return nil, flagError(lastFlag, "%v", err)
			}
			parsedFlags[lastFlag.GetName()] = pf
			lastFlag = nil
		case strings.HasPrefix(arg, "-"):
			mapped, exists := aliasToFlag[arg]
			if !exists {
				return nil, fmt.Errorf("unknown flag: %s", arg)
			}
			if mapped.isSwitch() {
				parsedFlags[mapped.GetName()] = mapped.parseSwitch()
				continue
			}
			lastFlag = mapped
		default:
			positionalValues = append(positionalValues, arg)
		}
	}

	if lastFlag != nil {
		return nil, flagError(lastFlag, "expects a value but none was provided")
	}

	// positional args fill unset positional flags in name order
	for _, value := range positionalValues {
		found := false
		for _, flag := range sortedFlags() {
			if _, exists := parsedFlags[flag.GetName()]; !exists && flag.GetPositional() {
				pf, err := flag.parse(value)
				if err != nil {
					return nil, flagError(flag, "%v", err)
				}
				parsedFlags[flag.GetName()] = pf
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unexpected positional argument: %s", value)
		}
	}

	for _, flag := range registeredFlags {
		if _, exists := parsedFlags[flag.GetName()]; !exists {
			if def := flag.defaultParsed(); def != nil {
				parsedFlags[flag.GetName()] = def
			}
		}
	}

	for _, flag := range registeredFlags {
		if flag.GetRequired() {
			if _, exists := parsedFlags[flag.GetName()]; !exists {
				return nil, flagError(flag, "required flag not set")
			}
		}
	}

	return parsedFlags, nil
}

func sortedFlags() []IFlag {
	out := make([]IFlag, 0, len(registeredFlags))
	for _, f := range registeredFlags {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

// -------------------------------
// Usage / Help
// --------------------------------

func PrintUsage(w io.Writer) {
	termWidth, _, err := xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		termWidth = 80
	}
	WriteUsage(w, termWidth)
}

// WriteUsage renders the help text for a terminal termWidth columns wide.
func WriteUsage(w io.Writer, termWidth int) {
	fmt.Fprintln(w, "Usage:")

	indent := 4
	leftColWidth := 0
	for name := range registeredFlags {
		if len(name) > leftColWidth {
			leftColWidth = len(name)
		}
	}
	if leftColWidth < 10 {
		leftColWidth = 10
	}
	leftColWidth += 2

	descWidth := termWidth - indent - leftColWidth - 1
	if descWidth < 20 {
		descWidth = 20
	}

	for _, f := range sortedFlags() {
		aliases := strings.Join(f.GetAliases(), ", ")
		fmt.Fprintf(w, "%s%-*s %s\n", strings.Repeat(" ", indent), leftColWidth, f.GetName(), aliases)
		if f.GetDescription() != "" {
			for _, ln := range wrapText(f.GetDescription(), descWidth) {
				fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent+leftColWidth), ln)
			}
		}
		if len(f.GetExpectedValues()) > 0 {
			values := make([]string, len(f.GetExpectedValues()))
			for i, v := range f.GetExpectedValues() {
				values[i] = fmt.Sprintf("%v", v)
				if values[i] == "" {
					values[i] = "<empty>"
				}
			}
			fmt.Fprintf(w, "%s[%s]\n", strings.Repeat(" ", indent+leftColWidth), strings.Join(values, ", "))
		}
		fmt.Fprintln(w)
	}
}

func wrapText(s string, maxWidth int) []string {
	if s == "" || maxWidth <= 0 {
		return []string{}
	}
	var out []string
	words := strings.Fields(s)
	var line strings.Builder
	for i, w := range words {
		extra := 0
		if line.Len() > 0 {
			extra = 1
		}
		if line.Len() > 0 && line.Len()+len(w)+extra > maxWidth {
			out = append(out, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
		if i == len(words)-1 {
			out = append(out, line.String())
		}
	}
	return out
}

// -------------------------------
// Helper functions
// --------------------------------
func Optional[T any](v T) *T { return &v }

func flagError(f IFlag, format string, args ...any) error {
	return fmt.Errorf("error with flag %s (%s): %s", f.GetName(), strings.Join(f.GetAliases(), ", "), fmt.Sprintf(format, args...))
}

// Get returns the parsed value of flag name, terminating the process if the
// flag is unknown or of a different type.
func Get[T any](flags map[string]IParsedFlag, name string) T {
	pf, exists := flags[name]
	if !exists {
		logger.Fatal("Flag %s was not registered", name)
		var zero T
		return zero
	}
	typed, ok := pf.(ParsedFlag[T])
	if !ok {
		logger.Fatal("Flag %s is not of expected type", name)
		var zero T
		return zero
	}
	return typed.Value
}
