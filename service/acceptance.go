package service

import (
	"net/http"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	amara := JSON{
		"id":         101,
		"name":       "Amara Obi",
		"department": "CS",
		"level":      3,
		"courses": []JSON{
			{"name": "Algorithms", "grade": 92},
			{"name": "Networks", "grade": 72},
		},
	}

	a.Alternative("Insert student", func(a *biff.A) {
		resp := apiRequest("POST", "/students").
			WithBodyJson(amara).Do()
		Save(resp, "Insert student", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		expectedAmara := JSON{
			"id":         101,
			"name":       "Amara Obi",
			"department": "CS",
			"level":      3,
			"courses": []JSON{
				{"name": "Algorithms", "grade": 92},
				{"name": "Networks", "grade": 72},
			},
			"gpa": 3.875,
		}
		biff.AssertEqualJson(resp.BodyJson(), expectedAmara)

		a.Alternative("Retrieve student", func(a *biff.A) {
			resp := apiRequest("GET", "/students/101").Do()
			Save(resp, "Retrieve student", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), expectedAmara)
		})

		a.Alternative("Insert duplicated student", func(a *biff.A) {
			resp := apiRequest("POST", "/students").
				WithBodyJson(JSON{
					"id":         101,
					"name":       "Someone Else",
					"department": "IT",
					"level":      1,
				}).Do()
			Save(resp, "Insert student - duplicated", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)

			resp = apiRequest("GET", "/students/101").Do()
			biff.AssertEqualJson(resp.BodyJson(), expectedAmara)
		})

		a.Alternative("Update student", func(a *biff.A) {
			resp := apiRequest("PATCH", "/students/101").
				WithBodyJson(JSON{
					"name":  "Amara N. Obi",
					"level": 4,
				}).Do()
			Save(resp, "Update student", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			body := resp.BodyJson().(JSON)
			biff.AssertEqual(body["name"], "Amara N. Obi")
			biff.AssertEqualJson(body["level"], 4)
			biff.AssertEqual(body["department"], "CS")
		})

		a.Alternative("Update student - invalid department", func(a *biff.A) {
			resp := apiRequest("PATCH", "/students/101").
				WithBodyJson(JSON{
					"name":       "Changed",
					"department": "XX",
				}).Do()
			Save(resp, "Update student - invalid department", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)

			resp = apiRequest("GET", "/students/101").Do()
			biff.AssertEqualJson(resp.BodyJson(), expectedAmara)
		})

		a.Alternative("Add course", func(a *biff.A) {
			resp := apiRequest("POST", "/students/101:addCourse").
				WithBodyJson(JSON{
					"name":  "Databases",
					"grade": 95,
				}).Do()
			Save(resp, "Add course", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			body := resp.BodyJson().(JSON)
			biff.AssertEqualJson(body["gpa"], 4.25)
			biff.AssertEqual(len(body["courses"].([]interface{})), 3)
		})

		a.Alternative("Add course - invalid grade", func(a *biff.A) {
			resp := apiRequest("POST", "/students/101:addCourse").
				WithBodyJson(JSON{
					"name":  "Databases",
					"grade": 101,
				}).Do()
			Save(resp, "Add course - invalid grade", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Remove course", func(a *biff.A) {
			resp := apiRequest("POST", "/students/101:removeCourse").
				WithBodyJson(JSON{
					"name": "Networks",
				}).Do()
			Save(resp, "Remove course", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			body := resp.BodyJson().(JSON)
			biff.AssertEqualJson(body["courses"], []JSON{
				{"name": "Algorithms", "grade": 92},
			})
			biff.AssertEqualJson(body["gpa"], 4.75)

			a.Alternative("Remove course - not found", func(a *biff.A) {
				resp := apiRequest("POST", "/students/101:removeCourse").
					WithBodyJson(JSON{
						"name": "Networks",
					}).Do()
				Save(resp, "Remove course - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Delete student", func(a *biff.A) {
			resp := apiRequest("DELETE", "/students/101").Do()
			Save(resp, "Delete student", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

			a.Alternative("Retrieve deleted student", func(a *biff.A) {
				resp := apiRequest("GET", "/students/101").Do()
				Save(resp, "Retrieve student - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Delete again", func(a *biff.A) {
				resp := apiRequest("DELETE", "/students/101").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Find by department", func(a *biff.A) {
			resp := apiRequest("POST", "/students:find").
				WithBodyJson(JSON{
					"department": "CS",
				}).Do()
			Save(resp, "Find by department", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{expectedAmara})

			a.Alternative("None found", func(a *biff.A) {
				resp := apiRequest("POST", "/students:find").
					WithBodyJson(JSON{
						"department": "EE",
					}).Do()
				Save(resp, "Find by department - none found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), []JSON{})
			})
		})

		a.Alternative("Find by level - invalid", func(a *biff.A) {
			resp := apiRequest("POST", "/students:find").
				WithBodyJson(JSON{
					"level": 11,
				}).Do()
			Save(resp, "Find by level - invalid", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Find - empty query", func(a *biff.A) {
			resp := apiRequest("POST", "/students:find").
				WithBodyJson(JSON{}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Insert more students", func(a *biff.A) {
			for _, student := range []JSON{
				{"id": 1, "name": "Carla", "department": "IT", "level": 2, "courses": []JSON{{"name": "Networks", "grade": 96}}},
				{"id": 201, "name": "Bruno", "department": "CS", "level": 3, "courses": []JSON{{"name": "Compilers", "grade": 50}}},
			} {
				resp := apiRequest("POST", "/students").WithBodyJson(student).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			}

			ids := func(resp *apitest.Response) []interface{} {
				result := []interface{}{}
				for _, item := range resp.BodyJson().([]interface{}) {
					result = append(result, item.(JSON)["id"])
				}
				return result
			}

			a.Alternative("List students", func(a *biff.A) {
				resp := apiRequest("GET", "/students").Do()
				Save(resp, "List students", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(ids(resp), []int{201, 1, 101})
			})

			a.Alternative("List students by GPA", func(a *biff.A) {
				resp := apiRequest("GET", "/students?sort=gpa").Do()
				Save(resp, "List students by GPA", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(ids(resp), []int{1, 101, 201})
			})

			a.Alternative("List students by name", func(a *biff.A) {
				resp := apiRequest("GET", "/students?sort=name").Do()
				Save(resp, "List students by name", ``)

				biff.AssertEqualJson(ids(resp), []int{101, 201, 1})
			})

			a.Alternative("List students reversed", func(a *biff.A) {
				resp := apiRequest("GET", "/students?sort=reverse").Do()

				biff.AssertEqualJson(ids(resp), []int{101, 1, 201})
			})

			a.Alternative("List students - unknown order", func(a *biff.A) {
				resp := apiRequest("GET", "/students?sort=age").Do()
				Save(resp, "List students - unknown order", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Find with filter", func(a *biff.A) {
				resp := apiRequest("POST", "/students:find").
					WithBodyJson(JSON{
						"filter": JSON{
							"level": JSON{"$gte": 3},
						},
						"sort": "name",
					}).Do()
				Save(resp, "Find with filter", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(ids(resp), []int{101, 201})
			})

			a.Alternative("Find by course", func(a *biff.A) {
				resp := apiRequest("POST", "/students:find").
					WithBodyJson(JSON{
						"course": "Networks",
					}).Do()
				Save(resp, "Find by course", ``)

				biff.AssertEqualJson(ids(resp), []int{1, 101})
			})

			a.Alternative("Statistics", func(a *biff.A) {
				resp := apiRequest("GET", "/statistics").Do()
				Save(resp, "Statistics", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"total":       3,
					"average_gpa": (5.0 + 0 + 3.875) / 3,
					"departments": []JSON{
						{"department": "CS", "count": 2, "average_gpa": (0 + 3.875) / 2},
						{"department": "IT", "count": 1, "average_gpa": 5.0},
					},
					"levels": []JSON{
						{"level": 2, "count": 1, "average_gpa": 5.0},
						{"level": 3, "count": 2, "average_gpa": (0 + 3.875) / 2},
					},
				})
			})

			a.Alternative("Buckets", func(a *biff.A) {
				resp := apiRequest("GET", "/buckets").Do()
				Save(resp, "Buckets", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"count":         3,
					"table_size":    100,
					"load_factor":   0.03,
					"collisions":    2,
					"empty_buckets": 99,
					"longest_chain": 3,
				})
			})

			a.Alternative("Save snapshot", func(a *biff.A) {
				resp := apiRequest("POST", "/snapshot:save").Do()
				Save(resp, "Save snapshot", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNoContent)
			})
		})
	})

	a.Alternative("Insert student - invalid level", func(a *biff.A) {
		resp := apiRequest("POST", "/students").
			WithBodyJson(JSON{
				"id":         5,
				"name":       "Fulanez",
				"department": "CS",
				"level":      11,
			}).Do()
		Save(resp, "Insert student - invalid level", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		biff.AssertEqual(resp.BodyJson().(JSON)["error"].(JSON)["description"], "Invalid input")
	})

	a.Alternative("Insert student - malformed JSON", func(a *biff.A) {
		resp := apiRequest("POST", "/students").
			WithBodyString(`{"id": 5, "name": `).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		biff.AssertEqual(resp.BodyJson().(JSON)["error"].(JSON)["description"], "Malformed JSON")
	})

	a.Alternative("Retrieve student - invalid id", func(a *biff.A) {
		resp := apiRequest("GET", "/students/abc").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("Statistics - no data", func(a *biff.A) {
		resp := apiRequest("GET", "/statistics").Do()
		Save(resp, "Statistics - no data", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"total":       0,
			"no_data":     true,
			"average_gpa": 0,
			"departments": []JSON{},
			"levels":      []JSON{},
		})
	})
}
