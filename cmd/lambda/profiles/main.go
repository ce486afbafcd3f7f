package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"profile-api/internal/handlers"
	"profile-api/pkg/lambda"
)

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	// Convert API Gateway event to generic request
	req := &lambda.Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,
	}

	requestID := req.Header("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}

	fields := logrus.Fields{
		"request_id": requestID,
		"method":     req.Method,
		"path":       req.Path,
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
	}

	resp, err := dispatch(ctx, event, req, fields)
	if err != nil {
		logrus.WithFields(fields).WithError(err).Error("Failed to build response")
		resp = &lambda.Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       []byte(`{"msg":"Unexpected error"}`),
		}
	}
	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	resp.Headers["X-Request-ID"] = requestID

	fields["status_code"] = resp.StatusCode
	fields["latency_ms"] = float64(time.Since(start).Nanoseconds()) / 1e6
	logrus.WithFields(fields).Info("Request completed")

	return toProxyResponse(resp, nil)
}

// dispatch decodes the body and routes the request through the warm container
func dispatch(ctx context.Context, event events.APIGatewayProxyRequest, req *lambda.Request, fields logrus.Fields) (*lambda.Response, error) {
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			logrus.WithFields(fields).WithError(err).Warn("Invalid base64 body")
			return lambda.JSON(http.StatusBadRequest, handlers.MessageResponse{Msg: handlers.MsgInvalidInput})
		}
		req.Body = decoded
	}

	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		logrus.WithFields(fields).WithError(err).Error("Failed to initialize container")
		return lambda.JSON(http.StatusInternalServerError, handlers.MessageResponse{Msg: handlers.MsgOperational})
	}

	router := handlers.NewLambdaRouter(container.ProfileService, container.Database())
	return router.Route(ctx, req)
}

func toProxyResponse(resp *lambda.Response, err error) (events.APIGatewayProxyResponse, error) {
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}, nil
}

func main() {
	awslambda.Start(handler)
}
