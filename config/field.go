package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/style"
	"github.com/spf13/viper"
)

// Field is a registered setting. Value is the default and fixes the type
// viper converts file and env values to.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env is the environment variable bound to the field.
func (f Field) Env() string {
	name := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App) + "_"
	return prefix + strings.TrimPrefix(name, prefix)
}

// Type names the kind of value the field holds.
func (f Field) Type() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []int:
		return "[]int"
	case []string:
		return "[]string"
	}
	return "unknown"
}

func (f Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func (f Field) MarshalJSON() ([]byte, error) {
	type view struct {
		Key         string `json:"key"`
		Type        string `json:"type"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Env         string `json:"env"`
		Description string `json:"description"`
	}

	return json.Marshal(view{
		Key:         f.Key,
		Type:        f.Type(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Env:         f.Env(),
		Description: f.Description,
	})
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		paint := style.Fg(color.Red)
		if value {
			paint = style.Fg(color.Green)
		}
		return paint(strconv.FormatBool(value))
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	}
	return fmt.Sprint(v)
}

var prettyTemplate = template.Must(template.New("field").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"label":   style.Fg(color.Blue),
	"name":    style.Fg(color.Purple),
	"current": viper.Get,
	"hl":      highlight,
}).Parse(`{{ faint .Description }}
{{ label "Key:" }}     {{ name .Key }}
{{ label "Env:" }}     {{ .Env }}
{{ label "Type:" }}    {{ .Type }}
{{ label "Value:" }}   {{ hl (current .Key) }}
{{ label "Default:" }} {{ hl .Value }}`))
