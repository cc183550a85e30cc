package config

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dirsum/pkg/errors"
)

// GenerateConfigContent renders a starter user config: the embedded
// defaults with every value line commented out, ready to uncomment.
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// EffectiveConfig renders the fully merged settings as a TOML
// document, showing what the current file and environment layers
// resolve to.
func EffectiveConfig(s *Settings) (string, error) {
	out, err := toml.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "rendering settings")
	}
	return string(out), nil
}

// commentOutConfigValues comments out every assignment line while
// keeping blank lines, comments and section headers as they are.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
