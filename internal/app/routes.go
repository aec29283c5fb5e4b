// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package app

import (
	"dataweb/cli/internal/router"
	"dataweb/cli/internal/views"
)

// Route names.
const (
	RouteHome     = "home"
	RouteLogin    = "login"
	RouteRegister = "register"
	RouteDataset  = "dataset"
)

// Routes returns the route table. Only the home page is built up front.
func Routes(sess views.SessionReader, info views.InfoSource) []router.Route {
	return []router.Route{
		{Path: "/", Name: RouteHome, Component: router.Eager(views.Home(sess))},
		{Path: "/login", Name: RouteLogin, Component: router.Lazy(func() (router.View, error) {
			return views.Login(), nil
		})},
		{Path: "/register", Name: RouteRegister, Component: router.Lazy(func() (router.View, error) {
			return views.Register(), nil
		})},
		{Path: "/dataset", Name: RouteDataset, RequiresAuth: true, Component: router.Lazy(func() (router.View, error) {
			return views.Dataset(info), nil
		})},
	}
}
