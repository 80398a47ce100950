// Package todomvc drives the TodoMVC page through a browser.Driver.
//
// A Page is the session handle every scenario works through. It bundles the
// driver with the page location, the storage key and the polling budget, and
// offers three groups of helpers:
//
// # Fixture loading
//
// Given serializes fixture tasks into the app's storage format, writes them
// under the storage key and reloads the page so the app renders them. It
// first makes sure the browser is on the app (EnsureOnPage), navigating only
// when it is not.
//
// # Interactions
//
// Add, StartEdit, Delete, Toggle, ToggleAll, ClearCompleted and Filter wrap
// single user gestures. StartEdit returns an Edit whose PressEnter,
// PressEscape, PressTab and ClickOutside methods end the edit along each of
// the paths the app distinguishes.
//
// # Assertions
//
// ExpectTasks, ExpectVisibleTasks, ExpectNoTasks, ExpectNoVisibleTasks and
// ExpectItemsLeft poll the page until it matches or the assert timeout
// expires, then fail with an expected-vs-actual message.
//
// Scenarios are usually written as a list of Actions executed by Run:
//
//	err := todomvc.Run(ctx, page,
//	    todomvc.Given(fixture.ATask("1", fixture.Active)),
//	    todomvc.Toggle("1"),
//	    todomvc.AssertTasks("1"),
//	    todomvc.AssertItemsLeft(0),
//	)
package todomvc
