package apistudentv1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/studentdb/service"
)

func BuildV1Students(v1 *box.R, s service.Servicer) *box.R {

	students := v1.Resource("/students").
		WithActions(
			box.Get(listStudents),
			box.Post(insertStudent),
			box.ActionPost(find).WithName("find"),
		)

	v1.Resource("/students/{studentId}").
		WithActions(
			box.Get(getStudent),
			box.Patch(patchStudent),
			box.Delete(deleteStudent),
			box.ActionPost(addCourse).WithName("addCourse"),
			box.ActionPost(removeCourse).WithName("removeCourse"),
		)

	v1.Resource("/statistics").
		WithActions(
			box.Get(getStatistics),
		)

	v1.Resource("/buckets").
		WithActions(
			box.Get(getBuckets),
		)

	v1.Resource("/snapshot").
		WithActions(
			box.ActionPost(save).WithName("save"),
		)

	return students
}
