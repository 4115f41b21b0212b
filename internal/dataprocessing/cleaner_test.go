package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanColumnName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "parenthetical and trailing comma",
			input: "PM2.5(细颗粒物), ",
			want:  "PM2.5",
		},
		{
			name:  "no-op without parentheses or comma",
			input: "NO2",
			want:  "NO2",
		},
		{
			name:  "surrounding whitespace and unit annotation",
			input: "  Temp (°C) ",
			want:  "Temp",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  "",
		},
		{
			name:  "multiple parenthetical groups",
			input: "wind(风)(m/s) speed",
			want:  "wind speed",
		},
		{
			name:  "trailing comma then whitespace inside",
			input: "humidity , ",
			want:  "humidity",
		},
		{
			name:  "only a parenthetical",
			input: "(removed)",
			want:  "",
		},
		{
			name:  "unbalanced open parenthesis survives",
			input: "O3(ozone",
			want:  "O3(ozone",
		},
		{
			name:  "nested parentheses leave a stray closer",
			input: "SO2((二氧化硫))",
			want:  "SO2)",
		},
		{
			name:  "newline from a raw header line is trimmed",
			input: "D\n",
			want:  "D",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanColumnName(tt.input))
		})
	}
}

func TestCleanColumnNameIdempotent(t *testing.T) {
	inputs := []string{
		"PM2.5(细颗粒物), ",
		"NO2",
		"  Temp (°C) ",
		"",
		"(removed)",
		"SO2((二氧化硫))",
		"a,b,",
		"  lat (纬度)  ,  ",
	}

	for _, input := range inputs {
		once := CleanColumnName(input)
		assert.Equal(t, once, CleanColumnName(once), "clean(clean(%q)) should equal clean(%q)", input, input)
	}
}

func TestCleanHeaderFields(t *testing.T) {
	fields := []string{"PM2.5(细颗粒物)", "NO2", "(dropped)", " Temp (°C) "}
	cleaned := CleanHeaderFields(fields)

	// Count and order are preserved, even for fields that clean to empty.
	assert.Equal(t, []string{"PM2.5", "NO2", "", "Temp"}, cleaned)
	assert.Len(t, cleaned, len(fields))

	// Input slice is not mutated
	assert.Equal(t, "PM2.5(细颗粒物)", fields[0])
}

func TestCleanHeaderFieldsEmpty(t *testing.T) {
	assert.Empty(t, CleanHeaderFields(nil))
	assert.Empty(t, CleanHeaderFields([]string{}))
}

func TestRewriteHeaderLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "drops token that cleans to empty",
			input: "A(x),B(y),,D\n",
			want:  "A, B, D",
		},
		{
			name:  "plain header",
			input: "lat,lon,PM2.5\n",
			want:  "lat, lon, PM2.5",
		},
		{
			name:  "trailing empty column removed",
			input: "PM2.5(细颗粒物),NO2(二氧化氮),\n",
			want:  "PM2.5, NO2",
		},
		{
			name:  "all tokens dropped",
			input: "(a),(b)\n",
			want:  "",
		},
		{
			name:  "no trailing newline",
			input: "A(x),B",
			want:  "A, B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteHeaderLine(tt.input))
		})
	}
}
