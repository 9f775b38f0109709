package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/amishk599/roomwatch/internal/app"
)

func main() {
	lambda.Start(app.HandleEvent)
}
