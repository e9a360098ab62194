// Assert response code is correct:
//
//	Then the response code should be 200
//
// Assert that the response has no body:
//
//	Then the response should be empty
//
// Assert that a json field of the response body is correct.  This uses a http://github.com/itchyny/gojq expression to select the json field of the
// response:
//
//	Then the ".brand" selection from the response should match "Apple"
//
// Assert that response json matches the provided json.  Differences in json formatting and field order are ignored:
//
//	Then the response should match json:
//	  """
//	  {"error": "Device not found with Id: ${device_id}", "resource": "device"}
//	  """
//
// Assert that response json contains the provided json fields:
//
//	Then the response should contain json:
//	  """
//	  {"name": "IPhone"}
//	  """
//
// Assert that response matches the provided yaml:
//
//	Then the response should match yaml:
//	  """
//	  name: IPhone
//	  """
//
// Stores a json field of the response body in a scenario variable:
//
//	Given I store the ".id" selection from the response as ${device_id}
//
// Assert that a response header matches the provided text:
//
//	Then the response header "Access-Control-Allow-Origin" should match "http://localhost:3000"
package cucumber

import (
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

func init() {
	StepModules = append(StepModules, func(ctx *godog.ScenarioContext, s *TestScenario) {
		ctx.Step(`^the response code should be (\d+)$`, s.theResponseCodeShouldBe)
		ctx.Step(`^the response should be empty$`, s.theResponseShouldBeEmpty)
		ctx.Step(`^the response should match json:$`, s.theResponseShouldMatchJson)
		ctx.Step(`^the response should contain json:$`, s.theResponseShouldContainJson)
		ctx.Step(`^the response should match yaml:$`, s.theResponseShouldMatchYaml)
		ctx.Step(`^the response should match "([^"]*)"$`, s.theResponseShouldMatchText)
		ctx.Step(`^I store the "([^"]*)" selection from the response as \${([^"]*)}$`, s.iStoreTheSelectionFromTheResponseAs)
		ctx.Step(`^the "(.*)" selection from the response should match "([^"]*)"$`, s.theSelectionFromTheResponseShouldMatch)
		ctx.Step(`^the "(.*)" selection from the response should not match "([^"]*)"$`, s.theSelectionFromTheResponseShouldNotMatch)
		ctx.Step(`^the response header "([^"]*)" should match "([^"]*)"$`, s.theResponseHeaderShouldMatch)
	})
}

func (s *TestScenario) response() (*TestSession, error) {
	session := s.Session()
	if session.Resp == nil {
		return nil, fmt.Errorf("no http request has been sent yet")
	}
	return session, nil
}

func (s *TestScenario) theResponseCodeShouldBe(expected int) error {
	session, err := s.response()
	if err != nil {
		return err
	}
	if actual := session.Resp.StatusCode; expected != actual {
		return fmt.Errorf("expected response code to be: %d, but actual is: %d, body: %s", expected, actual, string(session.RespBytes))
	}
	return nil
}

func (s *TestScenario) theResponseShouldBeEmpty() error {
	session, err := s.response()
	if err != nil {
		return err
	}
	if len(session.RespBytes) != 0 {
		return fmt.Errorf("expected an empty response, actual: %s", string(session.RespBytes))
	}
	return nil
}

func (s *TestScenario) theResponseShouldMatchJson(expected *godog.DocString) error {
	session, err := s.response()
	if err != nil {
		return err
	}
	if len(session.RespBytes) == 0 {
		return fmt.Errorf("got an empty response from server, expected a json body")
	}
	return s.JsonMustMatch(string(session.RespBytes), expected.Content, true)
}

func (s *TestScenario) theResponseShouldContainJson(expected *godog.DocString) error {
	session, err := s.response()
	if err != nil {
		return err
	}
	return s.JsonMustContain(string(session.RespBytes), expected.Content, true)
}

func (s *TestScenario) theResponseShouldMatchYaml(expected *godog.DocString) error {
	session, err := s.response()
	if err != nil {
		return err
	}
	return s.YamlMustMatch(string(session.RespBytes), expected.Content, true)
}

func (s *TestScenario) theResponseShouldMatchText(expected string) error {
	session, err := s.response()
	if err != nil {
		return err
	}
	expanded, err := s.Expand(expected)
	if err != nil {
		return err
	}
	if actual := string(session.RespBytes); expanded != actual {
		return fmt.Errorf("actual does not match expected, diff:\n%s", diff(expanded, actual))
	}
	return nil
}

func (s *TestScenario) theResponseHeaderShouldMatch(header, expected string) error {
	session, err := s.response()
	if err != nil {
		return err
	}
	expanded, err := s.Expand(expected)
	if err != nil {
		return err
	}
	if actual := session.Resp.Header.Get(header); expanded != actual {
		return fmt.Errorf("response header '%s' does not match expected: %v, actual: %v", header, expanded, actual)
	}
	return nil
}

func (s *TestScenario) iStoreTheSelectionFromTheResponseAs(selector string, as string) error {
	doc, err := s.Session().RespJson()
	if err != nil {
		return err
	}
	value, err := selectJson(selector, doc)
	if err != nil {
		return err
	}
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		s.Variables[as] = string(data)
	default:
		s.Variables[as] = value
	}
	return nil
}

// selection evaluates selector against the last response and renders the
// result as text, a missing value renders as null.
func (s *TestScenario) selection(selector string, expected string) (actual string, expanded string, err error) {
	doc, err := s.Session().RespJson()
	if err != nil {
		return "", "", err
	}
	expanded, err = s.Expand(expected)
	if err != nil {
		return "", "", err
	}
	value, err := selectJson(selector, doc)
	if err != nil {
		return "", "", err
	}
	if value == nil {
		return "null", expanded, nil
	}
	actual, err = ToString(value, selector, JsonEncoding)
	return actual, expanded, err
}

func (s *TestScenario) theSelectionFromTheResponseShouldMatch(selector string, expected string) error {
	actual, expected, err := s.selection(selector, expected)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("selected JSON does not match. expected: %v, actual: %v", expected, actual)
	}
	return nil
}

func (s *TestScenario) theSelectionFromTheResponseShouldNotMatch(selector string, unexpected string) error {
	actual, unexpected, err := s.selection(selector, unexpected)
	if err != nil {
		return err
	}
	if actual == unexpected {
		return fmt.Errorf("selected JSON should not be: %v", actual)
	}
	return nil
}
