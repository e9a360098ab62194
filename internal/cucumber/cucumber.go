// Package cucumber runs Gherkin feature files against a running device api
// server, providing generic http and sql steps.
//
// Variables stored by a step are scoped to the scenario.  Each scenario keeps
// its own http session holding the last response.  Scenarios may execute
// concurrently, use the LOCK step when a scenario needs the whole server to
// itself, for example to list every device.
//
// Using in a test
//
//	func TestFeatures(t *testing.T) {
//		s := cucumber.NewTestSuite(t, server.URL)
//		s.DB = db
//		opts := cucumber.DefaultOptions()
//		opts.TestingT = t
//		status := godog.TestSuite{
//			Name:                "devices",
//			Options:             &opts,
//			ScenarioInitializer: s.InitializeScenario,
//		}.Run()
//		...
//	}
package cucumber

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/ghodss/yaml"
	"github.com/itchyny/gojq"
	"github.com/pmezard/go-difflib/difflib"
	"gorm.io/gorm"
)

func NewTestSuite(t *testing.T, apiURL string) *TestSuite {
	return &TestSuite{
		Context:  context.Background(),
		ApiURL:   apiURL,
		Client:   &http.Client{},
		TestingT: t,
	}
}

func DefaultOptions() godog.Options {
	return godog.Options{
		Output:      colors.Colored(os.Stdout),
		Format:      "progress",
		Paths:       []string{"features"},
		Randomize:   -1,
		Concurrency: 4,
		Strict:      true,
	}
}

// TestSuite is the state shared by every scenario.
type TestSuite struct {
	Context  context.Context
	ApiURL   string
	Client   *http.Client
	DB       *gorm.DB
	TestingT *testing.T
}

// TestScenario is the state of a single scenario.  It is never accessed
// concurrently.
type TestScenario struct {
	Suite           *TestSuite
	PathPrefix      string
	Variables       map[string]interface{}
	session         *TestSession
	hasTestCaseLock bool
}

// TestSession holds the last http exchange of a scenario.
type TestSession struct {
	Resp      *http.Response
	RespBytes []byte
	respJson  interface{}
	// Header is sent with the next request only.
	Header http.Header
}

// RespJson returns the last response body parsed as json.
func (s *TestSession) RespJson() (interface{}, error) {
	if s.respJson == nil {
		if err := json.Unmarshal(s.RespBytes, &s.respJson); err != nil {
			return nil, fmt.Errorf("error parsing json response: %w\nbody: %s", err, string(s.RespBytes))
		}
	}
	return s.respJson, nil
}

func (s *TestSession) SetRespBytes(data []byte) {
	s.RespBytes = data
	s.respJson = nil
}

func (s *TestSession) reset() {
	s.Resp = nil
	s.RespBytes = nil
	s.respJson = nil
}

func (s *TestScenario) Session() *TestSession {
	if s.session == nil {
		s.session = &TestSession{Header: http.Header{}}
	}
	return s.session
}

func (s *TestScenario) Logf(format string, args ...any) {
	s.Suite.TestingT.Logf(format, args...)
}

// StepModules register steps on a scenario.  Packages add to it from init.
var StepModules []func(ctx *godog.ScenarioContext, s *TestScenario)

func (suite *TestSuite) InitializeScenario(ctx *godog.ScenarioContext) {
	s := &TestScenario{
		Suite:     suite,
		Variables: map[string]interface{}{},
	}
	for _, module := range StepModules {
		module(ctx, s)
	}
}

type Encoding struct {
	Name      string
	Marshal   func(any) ([]byte, error)
	Unmarshal func([]byte, any) error
}

var JsonEncoding = Encoding{
	Name: "json",
	Marshal: func(a any) ([]byte, error) {
		return json.MarshalIndent(a, "", "  ")
	},
	Unmarshal: json.Unmarshal,
}

var YamlEncoding = Encoding{
	Name:      "yaml",
	Marshal:   yaml.Marshal,
	Unmarshal: yaml.Unmarshal,
}

func diff(expected, actual string) string {
	text, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	return text
}

// EncodingMustMatch compares two documents ignoring formatting and key order.
func (s *TestScenario) EncodingMustMatch(encoding Encoding, actual, expected string, expandExpected bool) error {
	var actualParsed interface{}
	if err := encoding.Unmarshal([]byte(actual), &actualParsed); err != nil {
		return fmt.Errorf("error parsing actual %s: %w\n%s was:\n%s", encoding.Name, err, encoding.Name, actual)
	}

	if expandExpected {
		var err error
		if expected, err = s.Expand(expected); err != nil {
			return err
		}
	}
	if strings.TrimSpace(expected) == "" {
		formatted, _ := encoding.Marshal(actualParsed)
		return fmt.Errorf("expected %s not specified, actual %s was:\n%s", encoding.Name, encoding.Name, formatted)
	}

	var expectedParsed interface{}
	if err := encoding.Unmarshal([]byte(expected), &expectedParsed); err != nil {
		return fmt.Errorf("error parsing expected %s: %w\n%s was:\n%s", encoding.Name, err, encoding.Name, expected)
	}

	if !reflect.DeepEqual(expectedParsed, actualParsed) {
		e, _ := encoding.Marshal(expectedParsed)
		a, _ := encoding.Marshal(actualParsed)
		return fmt.Errorf("actual does not match expected, diff:\n%s", diff(string(e), string(a)))
	}
	return nil
}

func (s *TestScenario) JsonMustMatch(actual, expected string, expandExpected bool) error {
	return s.EncodingMustMatch(JsonEncoding, actual, expected, expandExpected)
}

func (s *TestScenario) YamlMustMatch(actual, expected string, expandExpected bool) error {
	return s.EncodingMustMatch(YamlEncoding, actual, expected, expandExpected)
}

// JsonMustContain checks that every field of expected is present in actual
// with the same value.  Fields only in actual are ignored.
func (s *TestScenario) JsonMustContain(actual, expected string, expand bool) error {
	var actualParsed interface{}
	if err := json.Unmarshal([]byte(actual), &actualParsed); err != nil {
		return fmt.Errorf("error parsing actual json: %w\njson was:\n%s", err, actual)
	}

	if expand {
		var err error
		if expected, err = s.Expand(expected); err != nil {
			return err
		}
	}
	if strings.TrimSpace(expected) == "" {
		formatted, _ := JsonEncoding.Marshal(actualParsed)
		return fmt.Errorf("expected json not specified, actual json was:\n%s", formatted)
	}

	before, err := JsonEncoding.Marshal(actualParsed)
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch(before, []byte(expected))
	if err != nil {
		return err
	}
	var mergedParsed interface{}
	if err := json.Unmarshal(merged, &mergedParsed); err != nil {
		return fmt.Errorf("error parsing merged json: %w\njson was:\n%s", err, merged)
	}
	after, err := JsonEncoding.Marshal(mergedParsed)
	if err != nil {
		return err
	}

	if string(before) != string(after) {
		return fmt.Errorf("actual does not contain expected, diff:\n%s", diff(string(after), string(before)))
	}
	return nil
}

// Expand replaces ${var} and $var references with scenario variables or
// selections of the last response such as ${response.id}.
func (s *TestScenario) Expand(value string, skippedVars ...string) (result string, rerr error) {
	return os.Expand(value, func(name string) string {
		for _, skipped := range skippedVars {
			if skipped == name {
				return "$" + name
			}
		}
		res, err := s.ResolveString(name)
		if err != nil {
			rerr = err
			return ""
		}
		return res
	}), rerr
}

func (s *TestScenario) ResolveString(name string) (string, error) {
	value, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	return ToString(value, name, JsonEncoding)
}

func ToString(value interface{}, name string, encoding Encoding) (string, error) {
	switch value := value.(type) {
	case string:
		return value, nil
	case bool:
		return fmt.Sprintf("%t", value), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", value), nil
	case float32, float64:
		// json numbers decode as float64
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", value), "0"), "."), nil
	case nil:
		return "", nil
	case error:
		return "", fmt.Errorf("failed to evaluate selection: %s: %w", name, value)
	}

	data, err := encoding.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Resolve evaluates a variable reference.  The reference may be followed by
// pipes, for example "response.name | json_escape".
func (s *TestScenario) Resolve(name string) (interface{}, error) {
	pipes := strings.Split(name, "|")
	for i := range pipes {
		pipes[i] = strings.TrimSpace(pipes[i])
	}
	name, pipes = pipes[0], pipes[1:]

	if name == "response" || strings.HasPrefix(name, "response.") || strings.HasPrefix(name, "response[") {
		doc, err := s.Session().RespJson()
		if err != nil {
			return pipeline(pipes, nil, err)
		}
		if name == "response" {
			return pipeline(pipes, doc, nil)
		}
		value, err := selectJson("."+name, map[string]interface{}{"response": doc})
		return pipeline(pipes, value, err)
	}

	value, found := s.Variables[name]
	if !found {
		return pipeline(pipes, nil, fmt.Errorf("variable ${%s} not defined yet", name))
	}
	return pipeline(pipes, value, nil)
}

// selectJson runs a jq expression against doc and returns the first result.
func selectJson(selector string, doc interface{}) (interface{}, error) {
	query, err := gojq.Parse(selector)
	if err != nil {
		return nil, err
	}
	next, found := query.Run(doc).Next()
	if !found {
		return nil, fmt.Errorf("json does not have a node that matches selector: %s", selector)
	}
	if err, ok := next.(error); ok {
		return nil, err
	}
	return next, nil
}

func pipeline(pipes []string, value any, err error) (any, error) {
	for _, pipe := range pipes {
		fn := PipeFunctions[pipe]
		if fn == nil {
			return nil, fmt.Errorf("unknown pipe: %s", pipe)
		}
		value, err = fn(value, err)
	}
	return value, err
}

var PipeFunctions = map[string]func(any, error) (any, error){
	"json": func(value any, err error) (any, error) {
		if err != nil {
			return value, err
		}
		data, err := JsonEncoding.Marshal(value)
		if err != nil {
			return value, err
		}
		return string(data), nil
	},
	"json_escape": func(value any, err error) (any, error) {
		if err != nil {
			return value, err
		}
		data, err := json.Marshal(fmt.Sprintf("%v", value))
		if err != nil {
			return value, err
		}
		return strings.TrimSuffix(strings.TrimPrefix(string(data), `"`), `"`), nil
	},
	"string": func(value any, err error) (any, error) {
		if err != nil {
			return value, err
		}
		return fmt.Sprintf("%v", value), nil
	},
}
