// Package seed loads threat mappings from JSON objects of address to
// description, the same shape the analyzer exports as threat_ips.json.
package seed

import (
	"fmt"
	"os"

	"github.com/valyala/fastjson"

	"github.com/user/threat-log-analyzer/internal/entity"
)

// LoadThreatMapping reads the JSON object stored at path.
func LoadThreatMapping(path string) (entity.ThreatMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read threat seed %s: %w", path, err)
	}
	threats, err := ParseThreatMapping(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse threat seed %s: %w", path, err)
	}
	return threats, nil
}

// ParseThreatMapping decodes a JSON object whose values must all be strings.
func ParseThreatMapping(data []byte) (entity.ThreatMapping, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	obj, err := v.Object()
	if err != nil {
		return nil, err
	}

	threats := make(entity.ThreatMapping, obj.Len())
	var visitErr error
	obj.Visit(func(key []byte, val *fastjson.Value) {
		if visitErr != nil {
			return
		}
		desc, err := val.StringBytes()
		if err != nil {
			visitErr = fmt.Errorf("value for %q: %w", key, err)
			return
		}
		threats[string(key)] = string(desc)
	})
	if visitErr != nil {
		return nil, visitErr
	}
	return threats, nil
}

// ParseFailedAttempts decodes a JSON object of address to integer count, the
// shape of failed_logins.json.
func ParseFailedAttempts(data []byte) (entity.FailedAttemptSummary, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	obj, err := v.Object()
	if err != nil {
		return nil, err
	}

	summary := make(entity.FailedAttemptSummary, obj.Len())
	var visitErr error
	obj.Visit(func(key []byte, val *fastjson.Value) {
		if visitErr != nil {
			return
		}
		count, err := val.Int()
		if err != nil {
			visitErr = fmt.Errorf("value for %q: %w", key, err)
			return
		}
		summary[string(key)] = count
	})
	if visitErr != nil {
		return nil, visitErr
	}
	return summary, nil
}
