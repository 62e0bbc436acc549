/*
Package testutil provides shared helpers for the asyncmock test suites.

# Core Testing Utilities

  - Recording: RecordingT stands in for a testing.T so assertion failures
    can be inspected instead of failing the running test
  - Sinks: SinkRecorder is a report.Sink that keeps every failure it receives
  - Context: TestContext bounds blocking waits with a timeout
  - Logging: TestLogger captures logrus output and entries
  - Metrics: TestMetrics wraps call metrics on a private registry and serves
    them over HTTP
  - Fixtures: FixtureDir writes JSON, YAML and raw result fixtures

Example Usage:

Checking what a mock reported:

	func TestClient(t *testing.T) {
	    sink := testutil.NewSinkRecorder()
	    client := &MockClient{Async: mock.New(sink)}

	    _, err := client.Get().Await(testutil.Context(t))
	    require.ErrorIs(t, err, mockerr.ErrUnexpectedCall)
	    sink.RequireFailure(t, "Unexpected function call MockClient.Get")
	}

Checking what a helper reported to testify:

	func TestHelper(t *testing.T) {
	    rt := testutil.NewRecordingT()
	    helper(rt)
	    rt.RequireFailureContaining(t, "expected")
	}

Fixtures from a temporary directory:

	func TestFixture(t *testing.T) {
	    fsys := testutil.FixtureFS(t, map[string]interface{}{
	        "user.json": User{Name: "ada"},
	        "user.yaml": User{Name: "ada"},
	    })
	    result := single.JSONFile[User](fsys, "user", "json")
	    // ...
	}

# Timeouts

Waits default to DefaultTimeout. RequireEventually polls a condition and
RequireReceive reads one value from a channel; both fail the test instead of
hanging.
*/
package testutil
