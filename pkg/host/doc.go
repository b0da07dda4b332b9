// Package host provides the single UI goroutine the reactive core runs on.
//
// Properties, components and the DOM are not safe for concurrent use. Work
// that starts elsewhere (async producers, network handlers) posts a
// closure to a Loop, and the goroutine running the loop applies it:
//
//	loop := host.NewLoop(256, slog.Default())
//	go loop.Run(ctx)
//
//	go func() {
//	    items, err := fetch(ctx)
//	    loop.Post(func() { cart.Set(items) })
//	}()
//
// A panicking task is recovered and logged; the loop keeps running.
package host
