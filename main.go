package main

import (
	"fmt"
	"time"

	"sd-server/config"
	"sd-server/di"
)

func main() {
	container := di.NewContainer("prod")

	fmt.Println("refreshing!")
	container.DashboardRefresherService.RefreshDashboardData()
	fmt.Println("starting periodic job!")
	container.DashboardRefresherService.StartPeriodicJob(config.DASHBOARD_REFRESHER_SCHEDULE_MINUTES * time.Minute)

	fmt.Println("starting server!")
	container.ShipmentDashHttpServer.Start()
	fmt.Println("server stopped!")
}
