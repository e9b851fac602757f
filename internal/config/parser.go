package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Parser parses Lua config files with a platform table available.
type Parser struct {
	info *platform.Info
}

// NewParser creates a parser. info may be nil, in which case no platform
// table is injected.
func NewParser(info *platform.Info) *Parser {
	return &Parser{info: info}
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Path is the Lua file to read. Empty means DefaultFileName.
	Path string
	// Required makes a missing file an error.
	Required bool
	// Getenv reads environment overrides. Nil uses os.Getenv.
	Getenv func(string) string
}

// Load builds the effective configuration from defaults, the config file
// and the environment, then validates it.
func (p *Parser) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = p.parseInto(ctx, cfg, string(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !opts.Required:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseString parses a Lua config on top of the defaults.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	return p.parseInto(ctx, Default(), luaCode)
}

func (p *Parser) parseInto(ctx context.Context, cfg *Config, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.info != nil {
		if err := platform.InjectPlatformTable(L, p.info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L, cfg)
}

// extractConfig reads the global fetchbin table into cfg.
func extractConfig(L *lua.LState, cfg *Config) (*Config, error) {
	root := L.GetGlobal(luaGlobalFetchbin)
	table, ok := root.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: fmt.Sprintf("missing or invalid '%s' table", luaGlobalFetchbin),
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{luaFieldVersion, &cfg.Version},
		{luaFieldBaseURL, &cfg.BaseURL},
		{luaFieldBinDir, &cfg.BinDir},
		{luaFieldLogLevel, &cfg.LogLevel},
	}
	for _, f := range fields {
		switch v := table.RawGetString(f.name).(type) {
		case lua.LString:
			*f.dst = string(v)
		case *lua.LNilType:
		default:
			return nil, &ParseError{
				Message: fmt.Sprintf("invalid '%s' field", f.name),
				Detail:  fmt.Sprintf("expected string, got %s", v.Type()),
			}
		}
	}

	switch v := table.RawGetString(luaFieldOptions).(type) {
	case *lua.LTable:
		opts, err := extractOptions(v)
		if err != nil {
			return nil, &ParseError{Message: "invalid 'options' table", Detail: err.Error()}
		}
		cfg.Options = opts
	case *lua.LNilType:
	default:
		return nil, &ParseError{
			Message: "invalid 'options' field",
			Detail:  fmt.Sprintf("expected table, got %s", v.Type()),
		}
	}

	return cfg, nil
}

// extractOptions accepts either an array of {name, value} pairs, kept in
// order, or a map keyed by option name, emitted in sorted order.
func extractOptions(table *lua.LTable) (*command.OptionSet, error) {
	if table.Len() > 0 {
		return extractOptionPairs(table)
	}

	raw := make(map[string]lua.LValue)
	var err error
	table.ForEach(func(key, value lua.LValue) {
		name, ok := key.(lua.LString)
		if !ok {
			if err == nil {
				err = fmt.Errorf("option names must be strings, got %s", key.Type())
			}
			return
		}
		raw[string(name)] = value
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	opts := command.NewOptionSet()
	for _, name := range names {
		v, err := luaOptionValue(raw[name])
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
		opts.Set(name, v)
	}
	return opts, nil
}

func extractOptionPairs(table *lua.LTable) (*command.OptionSet, error) {
	opts := command.NewOptionSet()
	for i := 1; i <= table.Len(); i++ {
		pair, ok := table.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("entry %d: expected {name, value} table, got %s", i, table.RawGetInt(i).Type())
		}
		name, ok := pair.RawGetInt(1).(lua.LString)
		if !ok || name == "" {
			return nil, fmt.Errorf("entry %d: option name must be a non-empty string", i)
		}
		v, err := luaOptionValue(pair.RawGetInt(2))
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", string(name), err)
		}
		opts.Set(string(name), v)
	}
	return opts, nil
}

func luaOptionValue(v lua.LValue) (command.Value, error) {
	switch x := v.(type) {
	case *lua.LNilType, lua.LBool:
		return command.NoValue(), nil
	case lua.LString:
		return command.String(string(x)), nil
	case lua.LNumber:
		if x == 0 {
			return command.NoValue(), nil
		}
		return command.String(formatNumber(x)), nil
	case *lua.LTable:
		items := make([]string, 0, x.Len())
		for i := 1; i <= x.Len(); i++ {
			switch item := x.RawGetInt(i).(type) {
			case lua.LString:
				items = append(items, string(item))
			case lua.LNumber:
				items = append(items, formatNumber(item))
			default:
				return command.Value{}, fmt.Errorf("list element %d: expected string, got %s", i, item.Type())
			}
		}
		return command.List(items...), nil
	default:
		return command.Value{}, fmt.Errorf("unsupported value type %s", v.Type())
	}
}

func formatNumber(n lua.LNumber) string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		return err.Error()
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
	}
	detail := parseErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", parseErr.Message, detail)
}
