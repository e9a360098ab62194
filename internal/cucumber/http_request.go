// Setting a path prefixed to subsequent http requests:
//
//	Given the path prefix is "/api/devices"
//
// Setting a header sent with the next request:
//
//	Given I set the "Origin" header to "http://localhost:3000"
//
// Send an http request. Supports (GET|POST|PUT|DELETE|PATCH|OPTIONS):
//
//	When I GET path "/${device_id}"
//
// Send an http request with a body. Supports (GET|POST|PUT|DELETE|PATCH|OPTIONS):
//
//	When I POST path "/add-device" with json body:
//	  """
//	  {"name":"IPhone","brand":"Apple"}
//	  """
//
// Wait until an http get responds with an expected response code or a timeout occurs:
//
//	Given I wait up to "5" seconds for a GET on path "/ready" response code to match "200"
package cucumber

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

func init() {
	StepModules = append(StepModules, func(ctx *godog.ScenarioContext, s *TestScenario) {
		ctx.Step(`^the path prefix is "([^"]*)"$`, s.theApiPrefixIs)
		ctx.Step(`^I set the "([^"]*)" header to "([^"]*)"$`, s.iSetTheHeaderTo)
		ctx.Step(`^I (GET|POST|PUT|DELETE|PATCH|OPTIONS) path "([^"]*)"$`, s.sendHttpRequest)
		ctx.Step(`^I (GET|POST|PUT|DELETE|PATCH|OPTIONS) path "([^"]*)" with json body:$`, s.SendHttpRequestWithJsonBody)
		ctx.Step(`^I wait up to "([^"]*)" seconds for a GET on path "([^"]*)" response code to match "([^"]*)"$`, s.iWaitUpToSecondsForAGETOnPathResponseCodeToMatch)
	})
}

func (s *TestScenario) theApiPrefixIs(prefix string) error {
	s.PathPrefix = prefix
	return nil
}

func (s *TestScenario) iSetTheHeaderTo(name, value string) error {
	expanded, err := s.Expand(value)
	if err != nil {
		return err
	}
	s.Session().Header.Set(name, expanded)
	return nil
}

func (s *TestScenario) sendHttpRequest(method, path string) error {
	return s.SendHttpRequestWithJsonBody(method, path, nil)
}

func (s *TestScenario) SendHttpRequestWithJsonBody(method, path string, jsonTxt *godog.DocString) error {
	return s.send(s.Suite.Context, method, path, jsonTxt)
}

func (s *TestScenario) send(ctx context.Context, method, path string, jsonTxt *godog.DocString) error {
	session := s.Session()
	session.reset()

	var body io.Reader
	if jsonTxt != nil {
		expanded, err := s.Expand(jsonTxt.Content)
		if err != nil {
			return err
		}
		body = strings.NewReader(expanded)
	}
	expandedPath, err := s.Expand(path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, s.Suite.ApiURL+s.PathPrefix+expandedPath, body)
	if err != nil {
		return err
	}
	req.Header = session.Header
	session.Header = http.Header{}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Suite.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	session.Resp = resp
	session.RespBytes, err = io.ReadAll(resp.Body)
	return err
}

func (s *TestScenario) iWaitUpToSecondsForAGETOnPathResponseCodeToMatch(timeout float64, path string, expected int) error {
	ctx, cancel := context.WithTimeout(s.Suite.Context, time.Duration(timeout*float64(time.Second)))
	defer cancel()

	interval := time.Duration(timeout * float64(time.Second) / 10.0)
	for {
		err := s.send(ctx, http.MethodGet, path, nil)
		if err == nil {
			if err = s.theResponseCodeShouldBe(expected); err == nil {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for response code %d: %w", expected, err)
		case <-time.After(interval):
		}
	}
}
