package record

type gradeStep struct {
	min   float64
	point float64
}

// gradeSteps maps a percentage to a grade point on a 5.0 scale, highest first
var gradeSteps = []gradeStep{
	{95, 5.0},
	{90, 4.75},
	{85, 4.5},
	{80, 4.0},
	{75, 3.5},
	{70, 3.0},
	{65, 2.5},
	{60, 2.0},
}

func GradePoint(percentage float64) float64 {
	for _, step := range gradeSteps {
		if percentage >= step.min {
			return step.point
		}
	}
	return 0
}

// CalculateGPA is the mean grade point of courses, 0 when there are none.
func CalculateGPA(courses []Course) float64 {
	if len(courses) == 0 {
		return 0
	}

	total := 0.0
	for _, course := range courses {
		total += GradePoint(course.Grade)
	}

	return total / float64(len(courses))
}
