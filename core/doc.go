/*
Package core decodes and structurally validates compact JWTs without
verifying their signatures.

Everything in this package is a pure function of its inputs. Callers pass the
base64url decoder and, where time matters, the current time; nothing is read
from or written to process-wide state, so any number of calls may run in
parallel.

# Decoding

	decoded, err := core.DecodeToken(base64url.Default(), token)
	if errors.Is(err, core.ErrInvalidTokenFormat) {
	    // not three segments
	}
	sub, _ := decoded.Payload.String("sub")

DecodeToken and ExtractIdentity return their errors. Both error kinds are
*TokenError values, and decoding failures wrap the underlying base64 or JSON
error:

	var tokenErr *core.TokenError
	if errors.As(err, &tokenErr) {
	    log.Println(tokenErr.Code)
	}

# Checking

IsExpired and ValidateToken never return an error. IsExpired treats a token it
cannot decode as expired, and ValidateToken folds every problem into the
returned Report:

	report := core.ValidateToken(base64url.Default(), token, time.Now())
	if !report.Valid {
	    for _, msg := range report.Errors {
	        fmt.Println(msg)
	    }
	}

The checks look for alg and typ ("JWT") in the header, the sub, aud, iss, exp
and iat claims in the payload, and finally compare exp against the supplied
time. They do not stop at the first failure.
*/
package core
