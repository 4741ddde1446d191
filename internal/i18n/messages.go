package i18n

import "github.com/salesdesk-next/internal/constants"

var catalog = map[string]map[string]string{
	constants.LocaleEnUS: {
		"error.bad_request":                "invalid request",
		"error.not_found":                  "resource not found",
		"error.internal":                   "internal server error",
		"error.unauthorized":               "unauthorized",
		"error.forbidden":                  "permission denied",
		"error.jwt_secret_missing":         "server auth is not configured",
		"error.auth_header_missing":        "missing authorization header",
		"error.auth_header_invalid":        "invalid authorization header",
		"error.token_invalid":              "invalid or expired token",
		"error.token_revoked":              "token has been revoked, please login again",
		"error.login_failed":               "incorrect username or password",
		"error.login_too_many":             "too many login attempts, retry in %d seconds",
		"error.rate_limited":               "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":     "rate limiter unavailable",
		"error.admin_id_invalid":           "invalid staff id",
		"error.admin_id_type_invalid":      "staff id type error",
		"error.admin_not_found":            "staff not found",
		"error.customer_not_found":         "customer not found",
		"error.product_not_found":          "product not found",
		"error.promotion_not_found":        "promotion not found",
		"error.promotion_inactive":         "promotion is inactive or expired",
		"error.bank_account_not_found":     "bank account not found",
		"error.order_not_found":            "order not found",
		"error.order_fetch_failed":         "failed to load order",
		"error.order_save_failed":          "failed to save order",
		"error.order_locked":               "order is locked for your role",
		"error.order_status_not_allowed":   "status change not allowed",
		"error.payment_status_invalid":     "payment status change not allowed",
		"error.awaiting_needs_payment":     "awaiting verification requires a paid amount",
		"error.pre_approved_unpaid":        "pre-approved order cannot stay unpaid",
		"error.item_not_found":             "order item not found",
		"error.quantity_invalid":           "quantity must be positive",
		"error.box_count_invalid":          "box count out of range",
		"error.box_sum_mismatch":           "box amounts do not match order total",
		"error.slip_not_found":             "transfer slip not found",
		"error.slip_incomplete":            "checked slips must have amount, bank account and transfer date",
		"error.slip_not_deletable":         "slip can no longer be deleted",
		"error.slip_not_editable":          "slip can no longer be edited",
		"error.no_checked_slips":           "at least one slip must be checked",
		"error.paid_amount_invalid":        "paid amount must be positive",
		"error.verification_not_cancelable": "verification can only be cancelled while the order is pending",
		"error.role_invalid":               "invalid role name",
		"error.role_builtin_immutable":     "builtin roles cannot be removed",
	},
	constants.LocaleThTH: {
		"error.bad_request":                "คำขอไม่ถูกต้อง",
		"error.not_found":                  "ไม่พบข้อมูลที่ต้องการ",
		"error.internal":                   "ระบบขัดข้อง กรุณาลองใหม่",
		"error.unauthorized":               "กรุณาเข้าสู่ระบบ",
		"error.forbidden":                  "ไม่มีสิทธิ์เข้าถึงรายการนี้",
		"error.jwt_secret_missing":         "ระบบยืนยันตัวตนยังไม่ถูกตั้งค่า",
		"error.auth_header_missing":        "ไม่พบข้อมูลยืนยันตัวตน",
		"error.auth_header_invalid":        "ข้อมูลยืนยันตัวตนไม่ถูกต้อง",
		"error.token_invalid":              "โทเคนไม่ถูกต้องหรือหมดอายุ",
		"error.token_revoked":              "โทเคนถูกยกเลิกแล้ว กรุณาเข้าสู่ระบบใหม่",
		"error.login_failed":               "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง",
		"error.login_too_many":             "พยายามเข้าสู่ระบบบ่อยเกินไป กรุณารอ %d วินาที",
		"error.rate_limited":               "ส่งคำขอบ่อยเกินไป กรุณารอ %d วินาที",
		"error.rate_limit_unavailable":     "ระบบจำกัดคำขอไม่พร้อมใช้งาน",
		"error.admin_id_invalid":           "รหัสพนักงานไม่ถูกต้อง",
		"error.admin_id_type_invalid":      "ประเภทรหัสพนักงานไม่ถูกต้อง",
		"error.admin_not_found":            "ไม่พบพนักงาน",
		"error.customer_not_found":         "ไม่พบลูกค้า",
		"error.product_not_found":          "ไม่พบสินค้า",
		"error.promotion_not_found":        "ไม่พบรายการโปรโมชั่น",
		"error.promotion_inactive":         "โปรโมชั่นหมดอายุหรือถูกปิดใช้งาน",
		"error.bank_account_not_found":     "ไม่พบบัญชีรับเงิน",
		"error.order_not_found":            "ไม่พบออเดอร์",
		"error.order_fetch_failed":         "ไม่สามารถโหลดออเดอร์ได้",
		"error.order_save_failed":          "บันทึกออเดอร์ไม่สำเร็จ",
		"error.order_locked":               "ออเดอร์ถูกล็อกสำหรับสิทธิ์ของคุณ",
		"error.order_status_not_allowed":   "ไม่สามารถเปลี่ยนสถานะออเดอร์ได้",
		"error.payment_status_invalid":     "ไม่สามารถเปลี่ยนสถานะการชำระเงินได้",
		"error.awaiting_needs_payment":     "สถานะรอตรวจสอบต้องมียอดชำระแล้ว",
		"error.pre_approved_unpaid":        "ออเดอร์อนุมัติล่วงหน้าต้องมีการชำระเงิน",
		"error.item_not_found":             "ไม่พบรายการสินค้าในออเดอร์",
		"error.quantity_invalid":           "จำนวนต้องมากกว่าศูนย์",
		"error.box_count_invalid":          "จำนวนกล่องเกินที่กำหนด",
		"error.box_sum_mismatch":           "ยอดเก็บเงินรายกล่องไม่ตรงกับยอดออเดอร์",
		"error.slip_not_found":             "ไม่พบสลิปโอนเงิน",
		"error.slip_incomplete":            "สลิปที่เลือกต้องมียอดเงิน บัญชีรับเงิน และวันที่โอนครบถ้วน",
		"error.slip_not_deletable":         "ไม่สามารถลบสลิปนี้ได้แล้ว",
		"error.slip_not_editable":          "ไม่สามารถแก้ไขสลิปนี้ได้แล้ว",
		"error.no_checked_slips":           "ต้องเลือกสลิปอย่างน้อยหนึ่งรายการ",
		"error.paid_amount_invalid":        "ยอดชำระต้องมากกว่าศูนย์",
		"error.verification_not_cancelable": "ยกเลิกการตรวจสอบได้เฉพาะออเดอร์ที่ยังรอดำเนินการ",
		"error.role_invalid":               "ชื่อสิทธิ์ไม่ถูกต้อง",
		"error.role_builtin_immutable":     "ไม่สามารถลบสิทธิ์พื้นฐานของระบบได้",
	},
}
