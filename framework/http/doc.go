// Package http provides Laravel-style request and response helpers, a
// template view engine and the Gate middleware that puts the submission
// gate in front of form handlers.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//	values, err := req.FormValues(form)   // JSON or form body
//	q := req.Query("q", "")
//	req.IsJSON()                          // Accept or Content-Type is JSON
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(v)                        // 200 {"data": v}
//	res.ValidationError(errs)             // 422 {"errors": {...}}
//	res.RedirectTo("/dashboard")          // 303
//
// # Gate
//
//	r.Post("/register", gohttp.Gate(g, handler, gohttp.RenderPage(views, "register", nil)))
//
// Inside handler, gohttp.Submitted(r) holds the sanitized values.
package http
