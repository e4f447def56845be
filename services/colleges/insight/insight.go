// Package insight is a client for the language-model microservice that turns
// scraped admissions HTML and college names into structured answers.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"collegeatlas-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("collegeatlas.services.colleges.insight")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput must be called before NewClient to take effect.
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyInstrumentOutput = output
}

type Config struct {
	BaseUrl string `json:"base_url"`
}

// Statistics mirrors the microservice's admissions-statistics response. The
// fields stay strings end to end; the collaborator does not commit to a
// numeric format.
type Statistics struct {
	TotalApplicants             string `json:"total_applicants"`
	TotalMaleApplicants         string `json:"total_male_applicants"`
	TotalFemaleApplicants       string `json:"total_female_applicants"`
	TotalPercentAdmitted        string `json:"total_percent_admitted"`
	TotalPercentMalesAdmitted   string `json:"total_percent_males_admitted"`
	TotalPercentFemalesAdmitted string `json:"total_percent_females_admitted"`
	SatAvgEnglish               string `json:"sat_avg_english"`
	SatAvgMath                  string `json:"sat_avg_math"`
	ActAvg                      string `json:"act_avg"`
}

type Client struct {
	client *resty.Client
}

func NewClient(cfg Config) Client {
	client := resty.New()
	client.SetBaseURL(cfg.BaseUrl)
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return Client{client: client}
}

// ApplicationStatistics posts an admissions-statistics HTML fragment and
// decodes the structured reply.
func (c Client) ApplicationStatistics(ctx context.Context, htmlFragment string) (Statistics, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(map[string]string{"input": htmlFragment}).
		Post("/get-application-statistics")
	if err != nil {
		return Statistics{}, err
	}
	if res.IsError() {
		return Statistics{}, fmt.Errorf("get-application-statistics: unexpected status %d", res.StatusCode())
	}

	var stats Statistics
	if err := json.Unmarshal(res.Body(), &stats); err != nil {
		return Statistics{}, fmt.Errorf("get-application-statistics: %w", err)
	}
	return stats, nil
}

// ApplicationRequirements returns the collaborator's list of free-text
// application requirements for a college name.
func (c Client) ApplicationRequirements(ctx context.Context, name string) ([]string, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(map[string]string{"name": name}).
		Post("/get-application-requirements")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("get-application-requirements: unexpected status %d", res.StatusCode())
	}

	var reqs []string
	if err := json.Unmarshal(res.Body(), &reqs); err != nil {
		return nil, fmt.Errorf("get-application-requirements: %w", err)
	}
	return reqs, nil
}

// HowReviewed returns the collaborator's free-text description of how a
// college reviews applications. The body is returned verbatim.
func (c Client) HowReviewed(ctx context.Context, name string) (string, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(map[string]string{"name": name}).
		Post("/get-how-reviewed")
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("get-how-reviewed: unexpected status %d", res.StatusCode())
	}
	return res.String(), nil
}

// Ask forwards a free-form question and returns the raw answer.
func (c Client) Ask(ctx context.Context, question string) (string, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(map[string]string{"question": question}).
		Post("/ask-question")
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("ask-question: unexpected status %d", res.StatusCode())
	}
	return res.String(), nil
}
