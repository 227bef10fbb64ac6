package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type RootController struct {
	e *echo.Echo
}

func NewRootController(e *echo.Echo) *RootController {
	return &RootController{e: e}
}

// InitRootRoutes initializes the root route
func (controller *RootController) InitRootRoutes() {
	controller.e.GET("/", controller.Hello)
}

func (controller *RootController) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Hello, World!"})
}
