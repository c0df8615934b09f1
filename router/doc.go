// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes to their handlers.

Routes use Go 1.22 method patterns on the standard ServeMux. Every
application route is wrapped in the logging middleware; /health is
left bare for load-balancer probes.
*/
package router
