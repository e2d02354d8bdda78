package main

import (
	"fmt"

	"github.com/fundarhq/fundar/backend/bootstrap"
	"github.com/fundarhq/fundar/backend/config"
	"github.com/fundarhq/fundar/backend/controllers"
	"github.com/fundarhq/fundar/backend/segment"
)

func main() {
	defer segment.CloseClient()

	r := bootstrap.Bootstrap()
	r.GET("/", controllers.Home)

	port := config.GetPort()
	r.Run(fmt.Sprintf(":%d", port))
}
