package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/profootballhighlights/pfh-scoreboard/internal/config"
	"github.com/profootballhighlights/pfh-scoreboard/internal/lambdahttp"
	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
	"github.com/profootballhighlights/pfh-scoreboard/internal/server"
)

const appVersion = "dev"

func main() {
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  "json",
		Service: "pfh-scoreboard-lambda",
		Version: appVersion,
	})
	lambda.Start(newAdapter(config.Load(), logger).Handle)
}

// newAdapter serves the proxy and standings routes. The dashboard session
// needs a long-lived process, so it is never started inside Lambda.
func newAdapter(cfg config.Config, logger *slog.Logger) *lambdahttp.Adapter {
	cfg.Dashboard.Enabled = false
	cfg.Metrics.Enabled = false
	return lambdahttp.New(server.New(cfg, logger).Handler(), logger)
}
