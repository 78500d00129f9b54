package search

import (
	"strconv"

	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

// StudentDocument 学生索引文档
type StudentDocument struct {
	ID        uint   `json:"id"`
	StudentNo string `json:"student_no"`
	Name      string `json:"name"`
	ClazzName string `json:"clazz_name"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// CourseDocument 课程索引文档
type CourseDocument struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Teacher     string `json:"teacher"`
	Description string `json:"description"`
}

// Indexer 负责业务对象与搜索索引之间的同步与查询
type Indexer struct {
	client *Client
}

// NewIndexer 创建索引器
func NewIndexer(client *Client) *Indexer {
	return &Indexer{client: client}
}

// Enabled 搜索是否可用
func (i *Indexer) Enabled() bool {
	return i != nil && i.client.Enabled()
}

// BuildStudentDocument 从学生模型构建索引文档
func BuildStudentDocument(student *models.Student) StudentDocument {
	return StudentDocument{
		ID:        student.ID,
		StudentNo: student.StudentNo,
		Name:      student.Name,
		ClazzName: student.ClazzName(),
		Gender:    student.Gender,
		Phone:     student.Phone,
		Email:     student.Email,
	}
}

// BuildCourseDocument 从课程模型构建索引文档
func BuildCourseDocument(course *models.Course) CourseDocument {
	return CourseDocument{
		ID:          course.ID,
		Code:        course.Code,
		Name:        course.Name,
		Teacher:     course.Teacher,
		Description: course.Description,
	}
}

// IndexStudent 写入（或更新）单个学生文档
func (i *Indexer) IndexStudent(student *models.Student) error {
	return i.client.IndexDocuments(constants.SearchIndexStudents, []StudentDocument{BuildStudentDocument(student)}, "id")
}

// DeleteStudent 删除学生文档
func (i *Indexer) DeleteStudent(studentID uint) error {
	return i.client.DeleteDocument(constants.SearchIndexStudents, strconv.FormatUint(uint64(studentID), 10))
}

// ReindexStudents 全量重建学生索引
func (i *Indexer) ReindexStudents(students []models.Student) error {
	if err := i.client.DeleteAllDocuments(constants.SearchIndexStudents); err != nil {
		return err
	}
	docs := make([]StudentDocument, 0, len(students))
	for idx := range students {
		docs = append(docs, BuildStudentDocument(&students[idx]))
	}
	if len(docs) == 0 {
		return nil
	}
	return i.client.IndexDocuments(constants.SearchIndexStudents, docs, "id")
}

// IndexCourse 写入（或更新）单个课程文档
func (i *Indexer) IndexCourse(course *models.Course) error {
	return i.client.IndexDocuments(constants.SearchIndexCourses, []CourseDocument{BuildCourseDocument(course)}, "id")
}

// DeleteCourse 删除课程文档
func (i *Indexer) DeleteCourse(courseID uint) error {
	return i.client.DeleteDocument(constants.SearchIndexCourses, strconv.FormatUint(uint64(courseID), 10))
}

// SearchStudents 学生全文搜索
func (i *Indexer) SearchStudents(query string, page, pageSize int) ([]map[string]interface{}, int64, error) {
	return i.search(constants.SearchIndexStudents, query, page, pageSize)
}

// SearchCourses 课程全文搜索
func (i *Indexer) SearchCourses(query string, page, pageSize int) ([]map[string]interface{}, int64, error) {
	return i.search(constants.SearchIndexCourses, query, page, pageSize)
}

func (i *Indexer) search(index, query string, page, pageSize int) ([]map[string]interface{}, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	resp, err := i.client.Search(index, query, &meilisearch.SearchRequest{
		Offset: int64((page - 1) * pageSize),
		Limit:  int64(pageSize),
	})
	if err != nil {
		return nil, 0, err
	}

	hits := make([]map[string]interface{}, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if doc, ok := hit.(map[string]interface{}); ok {
			hits = append(hits, doc)
		}
	}
	return hits, resp.EstimatedTotalHits, nil
}
