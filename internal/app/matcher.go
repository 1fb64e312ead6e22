package app

import (
	"fmt"
	"strings"
)

// replyRule maps a keyword set to a canned reply. Rules are evaluated in
// order and the first match wins, so a message hitting several categories
// always resolves to the earliest one.
type replyRule struct {
	keywords []string
	reply    string
}

var replyRules = []replyRule{
	{
		keywords: []string{"đặt lịch", "hẹn"},
		reply:    "Tôi sẽ giúp bạn đặt lịch hẹn. Để đặt lịch hẹn, bạn có thể:\n\n1. Vào mục \"Lịch hẹn của tôi\" trên thanh menu\n2. Chọn \"Tạo lịch hẹn mới\"\n3. Chọn bác sĩ và thời gian phù hợp\n\nBạn muốn đặt lịch hẹn với chuyên khoa nào?",
	},
	{
		keywords: []string{"đau đầu", "nhức đầu"},
		reply:    "Đau đầu có thể do nhiều nguyên nhân khác nhau:\n\n• Căng thẳng, mệt mỏi\n• Thiếu ngủ\n• Thay đổi thời tiết\n• Vấn đề về mắt\n\n⚠️ Lưu ý: Nếu đau đầu kéo dài, tái đi tái lại hoặc có các triệu chứng nghiêm trọng khác, bạn nên đặt lịch hẹn với bác sĩ để được khám và tư vấn cụ thể.",
	},
	{
		keywords: []string{"sốt", "phát sốt"},
		reply:    "Khi bị sốt, bạn cần:\n\n• Nghỉ ngơi đầy đủ\n• Uống nhiều nước\n• Dùng khăn ấm lau người\n• Theo dõi nhiệt độ thường xuyên\n\n🚨 Cần đến viện ngay nếu:\n• Sốt trên 39°C\n• Sốt kéo dài > 3 ngày\n• Có triệu chứng khó thở, co giật\n\nBạn có muốn tôi hỗ trợ đặt lịch hẹn khẩn cấp không?",
	},
	{
		keywords: []string{"hồ sơ", "bệnh án"},
		reply:    "Để quản lý hồ sơ y tế điện tử:\n\n1. Vào mục \"Hồ sơ y tế\" trên menu\n2. Xem lịch sử khám bệnh\n3. Tải lên kết quả xét nghiệm mới\n4. Theo dõi đơn thuốc\n\nTất cả thông tin được bảo mật tuyệt đối theo quy định. Bạn cần hỗ trợ gì thêm về hồ sơ y tế?",
	},
}

// Respond picks the canned reply for a user message. Matching is substring
// based over the lower-cased input; the fallback echoes the original text.
func Respond(userMessage string) string {
	lower := strings.ToLower(userMessage)
	for _, rule := range replyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return fmt.Sprintf("Tôi hiểu bạn đang hỏi về \"%s\". \n\nĐể được tư vấn chính xác nhất, tôi khuyên bạn nên:\n\n• Đặt lịch hẹn với bác sĩ chuyên khoa\n• Mô tả chi tiết triệu chứng khi khám\n• Mang theo kết quả xét nghiệm (nếu có)\n\nBạn có muốn tôi hỗ trợ đặt lịch hẹn ngay không?", userMessage)
}

// Greeting is the synthesized first assistant message for a fresh chat
// session, personalised with the user's display name when known.
func Greeting(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "bạn"
	}
	return fmt.Sprintf("Xin chào %s! Tôi là AI Assistant của MedicalHope. Tôi có thể giúp bạn:\n\n• Tư vấn sức khỏe cơ bản\n• Đặt lịch hẹn với bác sĩ\n• Giải đáp thắc mắc về dịch vụ y tế\n• Hướng dẫn sử dụng hệ thống\n\nBạn cần tôi hỗ trợ gì?", name)
}
