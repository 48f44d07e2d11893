package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/mergington/activities/internal/adapters/http/api"
	"github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeService backs the Dependencies and StatsProvider interfaces with a
// plain map, mirroring the seeded roster.
type fakeService struct {
	roster model.Roster
}

func newFakeService() *fakeService {
	return &fakeService{roster: model.Roster{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Art Club": {
			Description:     "Explore various art techniques and create your own masterpieces",
			Schedule:        "Wednesdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{},
		},
	}}
}

func (f *fakeService) ListActivities(_ context.Context) model.Roster {
	return f.roster.Clone()
}

func (f *fakeService) Signup(_ context.Context, name, email string) error {
	a, ok := f.roster[name]
	if !ok {
		return repository.ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		return repository.ErrAlreadyRegistered
	}
	a.Participants = append(a.Participants, email)
	f.roster[name] = a
	return nil
}

func (f *fakeService) RemoveParticipant(_ context.Context, name, email string) error {
	a, ok := f.roster[name]
	if !ok {
		return repository.ErrActivityNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return repository.ErrParticipantNotFound
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	f.roster[name] = a
	return nil
}

func (f *fakeService) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"started":      true,
		"activities":   len(f.roster),
		"participants": f.roster.ParticipantCount(),
	}
}

func newTestMux(svc *fakeService) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func decodeError(w *httptest.ResponseRecorder) (code, message string) {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(w.Body).Decode(&body)
	return body.Code, body.Message
}

func decodeMessage(w *httptest.ResponseRecorder) string {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(w.Body).Decode(&body)
	return body.Message
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(newFakeService())

		Convey("Then the health endpoint should be accessible", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should report roster counts", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)

			var stats map[string]interface{}
			So(json.NewDecoder(w.Body).Decode(&stats), ShouldBeNil)
			So(stats["activities"], ShouldEqual, 3)
		})

		Convey("And every response should carry a request id", func() {
			req := httptest.NewRequest("GET", "/activities", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
		})

		Convey("And a client-sent request id should be preserved", func() {
			req := httptest.NewRequest("GET", "/activities", nil)
			req.Header.Set("X-Request-Id", "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get("X-Request-Id"), ShouldEqual, "abc-123")
		})

		Convey("And unknown routes should 404", func() {
			req := httptest.NewRequest("GET", "/activities/Chess%20Club/unknown", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestActivitiesHandler_HandleList(t *testing.T) {
	Convey("Given the activities endpoint", t, func() {
		mux := newTestMux(newFakeService())

		Convey("When listing activities", func() {
			req := httptest.NewRequest("GET", "/activities", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then all activities are returned keyed by name", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var roster map[string]model.Activity
				So(json.NewDecoder(w.Body).Decode(&roster), ShouldBeNil)
				So(roster, ShouldContainKey, "Chess Club")
				So(roster, ShouldContainKey, "Programming Class")
				So(roster, ShouldContainKey, "Art Club")
			})
		})

		Convey("When inspecting one activity's structure", func() {
			req := httptest.NewRequest("GET", "/activities", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			var roster map[string]json.RawMessage
			So(json.NewDecoder(w.Body).Decode(&roster), ShouldBeNil)

			var chess map[string]any
			So(json.Unmarshal(roster["Chess Club"], &chess), ShouldBeNil)

			Convey("Then the documented fields are present", func() {
				So(chess, ShouldContainKey, "description")
				So(chess, ShouldContainKey, "schedule")
				So(chess, ShouldContainKey, "max_participants")
				So(chess, ShouldContainKey, "participants")
			})

			Convey("And the seeded participants are listed", func() {
				participants, ok := chess["participants"].([]any)
				So(ok, ShouldBeTrue)
				So(participants, ShouldContain, "michael@mergington.edu")
				So(participants, ShouldContain, "daniel@mergington.edu")
			})
		})

		Convey("When using a non-GET method", func() {
			req := httptest.NewRequest("POST", "/activities", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSignupHandler_HandleSignup(t *testing.T) {
	Convey("Given the signup endpoint", t, func() {
		svc := newFakeService()
		mux := newTestMux(svc)

		Convey("When signing up a new student", func() {
			req := httptest.NewRequest("POST", "/activities/Art%20Club/signup?email=newstudent@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it succeeds with a confirmation message", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				msg := decodeMessage(w)
				So(msg, ShouldContainSubstring, "newstudent@mergington.edu")
				So(msg, ShouldContainSubstring, "Art Club")
			})

			Convey("And the participant is added to the roster", func() {
				So(svc.roster["Art Club"].HasParticipant("newstudent@mergington.edu"), ShouldBeTrue)
				So(svc.roster["Art Club"].Participants, ShouldHaveLength, 1)
			})
		})

		Convey("When signing up for a nonexistent activity", func() {
			req := httptest.NewRequest("POST", "/activities/Nonexistent%20Club/signup?email=student@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should 404 with the activity detail", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				_, msg := decodeError(w)
				So(msg, ShouldEqual, "Activity not found")
			})
		})

		Convey("When signing up an already registered student", func() {
			req := httptest.NewRequest("POST", "/activities/Chess%20Club/signup?email=michael@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should 400 and leave the roster unchanged", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				code, msg := decodeError(w)
				So(code, ShouldEqual, "already_registered")
				So(msg, ShouldContainSubstring, "already signed up")
				So(svc.roster["Chess Club"].Participants, ShouldHaveLength, 2)
			})
		})

		Convey("When the email parameter is missing", func() {
			req := httptest.NewRequest("POST", "/activities/Art%20Club/signup", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				code, _ := decodeError(w)
				So(code, ShouldEqual, "bad_request")
			})
		})

		Convey("When using a non-POST method on the signup path", func() {
			req := httptest.NewRequest("GET", "/activities/Art%20Club/signup?email=x@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the activity name is URL encoded", func() {
			req := httptest.NewRequest("POST", "/activities/Programming%20Class/signup?email=newcoder@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the encoded name resolves", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(svc.roster["Programming Class"].HasParticipant("newcoder@mergington.edu"), ShouldBeTrue)
			})
		})
	})
}

func TestUnregisterHandler_HandleRemove(t *testing.T) {
	Convey("Given the participant removal endpoint", t, func() {
		svc := newFakeService()
		mux := newTestMux(svc)

		Convey("When removing a registered participant", func() {
			req := httptest.NewRequest("DELETE", "/activities/Chess%20Club/participants/michael@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it succeeds with a confirmation message", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				msg := decodeMessage(w)
				So(msg, ShouldContainSubstring, "Removed")
				So(msg, ShouldContainSubstring, "michael@mergington.edu")
			})

			Convey("And only that participant is removed", func() {
				So(svc.roster["Chess Club"].Participants, ShouldResemble, []string{"daniel@mergington.edu"})
			})
		})

		Convey("When removing from a nonexistent activity", func() {
			req := httptest.NewRequest("DELETE", "/activities/Nonexistent%20Club/participants/student@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should 404 with the activity detail", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				_, msg := decodeError(w)
				So(msg, ShouldEqual, "Activity not found")
			})
		})

		Convey("When removing a participant who is not registered", func() {
			req := httptest.NewRequest("DELETE", "/activities/Chess%20Club/participants/notregistered@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should 404 with a participant detail", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				_, msg := decodeError(w)
				So(msg, ShouldContainSubstring, "not found")
				So(svc.roster["Chess Club"].Participants, ShouldHaveLength, 2)
			})
		})

		Convey("When using a non-DELETE method on the participants path", func() {
			req := httptest.NewRequest("GET", "/activities/Chess%20Club/participants/michael@mergington.edu", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSignupRemoveWorkflow(t *testing.T) {
	Convey("Given a signup then removal workflow", t, func() {
		svc := newFakeService()
		mux := newTestMux(svc)

		do := func(method, target string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(method, target, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		before := len(svc.roster["Art Club"].Participants)

		Convey("When a student signs up and is then removed", func() {
			So(do("POST", "/activities/Art%20Club/signup?email=test@mergington.edu").Code, ShouldEqual, http.StatusOK)
			So(svc.roster["Art Club"].Participants, ShouldHaveLength, before+1)

			So(do("DELETE", "/activities/Art%20Club/participants/test@mergington.edu").Code, ShouldEqual, http.StatusOK)

			Convey("Then the roster returns to its prior state", func() {
				So(svc.roster["Art Club"].Participants, ShouldHaveLength, before)
				So(svc.roster["Art Club"].HasParticipant("test@mergington.edu"), ShouldBeFalse)
			})
		})

		Convey("When one student signs up for two activities", func() {
			email := "multitasker@mergington.edu"
			So(do("POST", fmt.Sprintf("/activities/Art%%20Club/signup?email=%s", email)).Code, ShouldEqual, http.StatusOK)
			So(do("POST", fmt.Sprintf("/activities/Chess%%20Club/signup?email=%s", email)).Code, ShouldEqual, http.StatusOK)

			Convey("Then both rosters carry the email", func() {
				So(svc.roster["Art Club"].HasParticipant(email), ShouldBeTrue)
				So(svc.roster["Chess Club"].HasParticipant(email), ShouldBeTrue)
			})
		})
	})
}
