/*
Package jwtinspect decodes compact JWTs and checks that they look well-formed
and unexpired, without verifying signatures.

It is meant for code that needs to read a token it already trusts, or that
wants a cheap structural gate in front of a verifying component: a UI showing
who is logged in, a proxy deciding whether to refresh a token, a CLI printing
claims. It never makes network calls and keeps no state.

# Quick Start

	decoded, err := jwtinspect.DecodeToken(token)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(decoded.Header, decoded.Payload)

	if jwtinspect.IsExpired(token) {
	    // refresh
	}

	report := jwtinspect.ValidateToken(token)
	if !report.Valid {
	    fmt.Println(report.Errors)
	}

The package-level functions use a default Inspector. Build your own to plug in
logging, metrics, tracing or a fixed clock:

	inspector, err := jwtinspect.New(
	    jwtinspect.WithLogger(jwtinspect.NewLogrusLogger(logrus.StandardLogger())),
	    jwtinspect.WithMetrics(jwtinspect.NewPrometheusMetrics(prometheus.DefaultRegisterer)),
	    jwtinspect.WithTracer(jwtinspect.NewOpenTelemetryTracer(otel.Tracer("jwtinspect"))),
	)

# Errors

DecodeToken and ExtractIdentity return errors matching core.ErrInvalidTokenFormat
or core.ErrTokenDecode. IsExpired and ValidateToken never fail: an undecodable
token is expired, and every problem found by ValidateToken is listed in the
report, in a fixed order.

# HTTP

Middleware applies ValidateToken to incoming requests and stores the token's
identity in the request context:

	mw, err := jwtinspect.NewMiddleware(inspector)
	if err != nil {
	    log.Fatal(err)
	}
	http.Handle("/api/", mw.CheckToken(apiHandler))

	func apiHandler(w http.ResponseWriter, r *http.Request) {
	    id, err := jwtinspect.IdentityFrom(r.Context())
	    ...
	}

For gin and echo, use mw.Gin(nil) or mw.Echo(nil) as a router middleware.
gRPC servers take mw.UnaryServerInterceptor(nil) and
mw.StreamServerInterceptor(nil), which read the token from the
"authorization" metadata.

# Non-ASCII claims

Segments are read as UTF-8. WithLatin1Text reproduces decoders that map
each byte to one character, which mangles non-ASCII claim values.
*/
package jwtinspect
