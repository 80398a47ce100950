// Package testutil provides shared test helpers for the suite.
//
// # Fake page
//
// FakePage is an in-memory browser.Driver rendering a troopjs-style TodoMVC
// app: the same markup the page helpers address, localStorage persistence, and
// hash-routed filters. Scripts passed to Eval run in a goja VM against the
// fake's storage. FailOn injects driver errors; Calls records every driver
// operation.
//
// # Fixtures
//
//   - SampleActiveTasks(), SampleCompletedTasks(), SampleMixedTasks()
//   - SampleTrickyTasks() - texts with quotes, backslashes and markup
//   - Texts(tasks) - the texts of a task list
//
// # Environment
//
//   - SetupConfigDir(t, yaml) - temp dir with a todomvc-e2e.yaml
//   - ClearConfigEnv(t) - blanks the config environment variables
//   - FindProjectRoot(t) - the directory holding go.mod
//   - LoadE2EConfig(t) - suite config for browser tests, skipped in short mode
//   - RegisterDriver, CloseAllDrivers - close leaked browsers from TestMain
//
// # Assertions
//
//   - AssertStoredTasks(t, page, tasks...) - what the fake app persisted
//   - AssertRendered(t, page, tasks...) - what the fake app shows
//   - AssertStorageEmpty(t, page)
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    fake := testutil.NewFakePage()
//	    page := todomvc.NewPage(fake, todomvc.Options{BaseURL: testutil.FakeURL})
//	    ctx, cancel := testutil.FakeContext(t)
//	    defer cancel()
//	    require.NoError(t, page.Given(ctx, testutil.SampleMixedTasks()...))
//	    testutil.AssertRendered(t, fake, testutil.SampleMixedTasks()...)
//	}
package testutil
