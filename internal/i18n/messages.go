package i18n

// messages 各语言消息目录
var messages = map[string]map[string]string{
	LocaleES: {
		"error.bad_request":            "Solicitud inválida",
		"error.unauthorized":           "No autenticado",
		"error.forbidden":              "Operación no permitida",
		"error.not_found":              "Recurso no encontrado",
		"error.internal":               "Error interno del servidor",
		"error.save_failed":            "No se pudo guardar",
		"error.rate_limited":           "Demasiadas solicitudes, inténtalo en %d segundos",
		"error.rate_limit_unavailable": "El limitador de peticiones no está disponible",
		"error.login_too_many":         "Demasiados intentos de acceso, inténtalo en %d segundos",

		"error.auth_header_missing": "Falta la cabecera de autenticación",
		"error.auth_header_invalid": "Cabecera de autenticación inválida",
		"error.jwt_secret_missing":  "Autenticación no configurada",
		"error.token_invalid":       "Sesión inválida o caducada",
		"error.token_revoked":       "La sesión ha sido revocada",
		"error.user_disabled":       "La cuenta está deshabilitada",
		"error.user_banned":         "La cuenta está bloqueada",

		"error.email_invalid":                 "Dirección de correo inválida",
		"error.email_exists":                  "El correo ya está registrado",
		"error.email_not_found":               "El correo no está registrado",
		"error.verify_purpose_invalid":        "Propósito de verificación inválido",
		"error.verify_code_invalid":           "Código inválido o caducado",
		"error.verify_code_expired":           "Código inválido o caducado",
		"error.verify_code_attempts_exceeded": "Demasiados intentos, solicita un código nuevo",
		"error.verify_code_too_frequent":      "Espera %d segundos antes de pedir otro código",
		"error.send_verify_code_failed":       "No se pudo enviar el código",
		"error.email_recipient_not_found":     "El servidor de correo rechazó al destinatario",
		"error.email_service_not_configured":  "El servicio de correo no está configurado",
		"error.login_failed":                  "No se pudo iniciar sesión",
		"error.register_failed":               "No se pudo completar el registro",
		"error.user_not_found":                "Usuario no encontrado",
		"error.user_fetch_failed":             "No se pudo consultar el usuario",
		"error.user_update_failed":            "No se pudo actualizar el usuario",
		"error.user_id_invalid":               "Identificador de usuario inválido",
		"error.user_id_type_invalid":          "Identificador de usuario inválido",

		"error.captcha_required":        "Se requiere el captcha",
		"error.captcha_invalid":         "Captcha incorrecto",
		"error.captcha_generate_failed": "No se pudo generar el captcha",
		"error.captcha_unavailable":     "El captcha no está disponible",

		"error.admin_login_invalid":   "Usuario o contraseña incorrectos",
		"error.password_weak":         "La contraseña no cumple la política de seguridad",
		"error.password_old_invalid":  "La contraseña actual no es correcta",
		"error.password_min_length":      "La contraseña debe tener al menos %d caracteres",
		"error.password_require_upper":   "La contraseña debe incluir una letra mayúscula",
		"error.password_require_lower":   "La contraseña debe incluir una letra minúscula",
		"error.password_require_number":  "La contraseña debe incluir un número",
		"error.password_require_special": "La contraseña debe incluir un carácter especial",
		"error.admin_fetch_failed":    "No se pudo consultar el administrador",
		"error.admin_create_failed":   "No se pudo crear el administrador",
		"error.admin_update_failed":   "No se pudo actualizar el administrador",
		"error.admin_delete_failed":   "No se pudo eliminar el administrador",
		"error.admin_username_exists":          "El nombre de administrador ya existe",
		"error.admin_username_invalid":         "Nombre de administrador inválido",
		"error.admin_delete_self_forbidden":    "No puedes eliminar tu propia cuenta",
		"error.admin_delete_last_forbidden":    "No se puede eliminar el último administrador",
		"error.admin_delete_protected":         "Este administrador está protegido",
		"error.config_fetch_failed":            "No se pudo consultar la configuración de permisos",
		"error.admin_id_invalid":      "Identificador de administrador inválido",
		"error.admin_id_type_invalid": "Identificador de administrador inválido",
		"error.user_login_log_fetch_failed": "No se pudo consultar el historial de accesos",

		"error.category_invalid":     "Categoría desconocida",
		"error.post_content_length":  "El contenido del marrón debe tener entre 10 y 2000 caracteres",
		"error.reply_content_length": "La respuesta debe tener entre 5 y 1000 caracteres",
		"error.post_not_found":       "Marrón no encontrado",
		"error.reply_not_found":      "Respuesta no encontrada",
		"error.post_create_failed":   "No se pudo publicar el marrón",
		"error.post_fetch_failed":    "No se pudo consultar el marrón",
		"error.post_delete_failed":   "No se pudo eliminar el marrón",
		"error.reply_create_failed":  "No se pudo publicar la respuesta",
		"error.reply_fetch_failed":   "No se pudo consultar la respuesta",
		"error.reply_delete_failed":  "No se pudo eliminar la respuesta",
		"error.like_failed":          "No se pudo registrar el voto",
		"error.like_target_invalid":  "Objetivo del voto inválido",
		"error.stats_fetch_failed":   "No se pudieron consultar las estadísticas",
		"error.reconcile_failed":     "No se pudieron recalcular los contadores",
	},
	LocaleEN: {
		"error.bad_request":            "Invalid request",
		"error.unauthorized":           "Not authenticated",
		"error.forbidden":              "Operation not allowed",
		"error.not_found":              "Resource not found",
		"error.internal":               "Internal server error",
		"error.save_failed":            "Save failed",
		"error.rate_limited":           "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter is unavailable",
		"error.login_too_many":         "Too many sign-in attempts, retry in %d seconds",

		"error.auth_header_missing": "Missing authentication header",
		"error.auth_header_invalid": "Invalid authentication header",
		"error.jwt_secret_missing":  "Authentication is not configured",
		"error.token_invalid":       "Session is invalid or expired",
		"error.token_revoked":       "Session has been revoked",
		"error.user_disabled":       "Account is disabled",
		"error.user_banned":         "Account is banned",

		"error.email_invalid":                 "Invalid email address",
		"error.email_exists":                  "Email is already registered",
		"error.email_not_found":               "Email is not registered",
		"error.verify_purpose_invalid":        "Invalid verification purpose",
		"error.verify_code_invalid":           "Code is invalid or expired",
		"error.verify_code_expired":           "Code is invalid or expired",
		"error.verify_code_attempts_exceeded": "Too many attempts, request a new code",
		"error.verify_code_too_frequent":      "Wait %d seconds before requesting another code",
		"error.send_verify_code_failed":       "Could not send the code",
		"error.email_recipient_not_found":     "Mail server rejected the recipient",
		"error.email_service_not_configured":  "Email service is not configured",
		"error.login_failed":                  "Sign-in failed",
		"error.register_failed":               "Registration failed",
		"error.user_not_found":                "User not found",
		"error.user_fetch_failed":             "Could not load the user",
		"error.user_update_failed":            "Could not update the user",
		"error.user_id_invalid":               "Invalid user identifier",
		"error.user_id_type_invalid":          "Invalid user identifier",

		"error.captcha_required":        "Captcha is required",
		"error.captcha_invalid":         "Captcha is incorrect",
		"error.captcha_generate_failed": "Could not generate the captcha",
		"error.captcha_unavailable":     "Captcha is unavailable",

		"error.admin_login_invalid":   "Invalid username or password",
		"error.password_weak":         "Password does not meet the security policy",
		"error.password_old_invalid":  "Current password is incorrect",
		"error.password_min_length":      "Password must be at least %d characters long",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a number",
		"error.password_require_special": "Password must contain a special character",
		"error.admin_fetch_failed":    "Could not load the admin account",
		"error.admin_create_failed":   "Could not create the admin account",
		"error.admin_update_failed":   "Could not update the admin account",
		"error.admin_delete_failed":   "Could not delete the admin account",
		"error.admin_username_exists":          "Admin username already exists",
		"error.admin_username_invalid":         "Invalid admin username",
		"error.admin_delete_self_forbidden":    "You cannot delete your own account",
		"error.admin_delete_last_forbidden":    "The last admin account cannot be deleted",
		"error.admin_delete_protected":         "This admin account is protected",
		"error.config_fetch_failed":            "Could not load the permission configuration",
		"error.admin_id_invalid":      "Invalid admin identifier",
		"error.admin_id_type_invalid": "Invalid admin identifier",
		"error.user_login_log_fetch_failed": "Could not load the sign-in history",

		"error.category_invalid":     "Unknown category",
		"error.post_content_length":  "Post content must be between 10 and 2000 characters",
		"error.reply_content_length": "Reply content must be between 5 and 1000 characters",
		"error.post_not_found":       "Post not found",
		"error.reply_not_found":      "Reply not found",
		"error.post_create_failed":   "Could not publish the post",
		"error.post_fetch_failed":    "Could not load the post",
		"error.post_delete_failed":   "Could not delete the post",
		"error.reply_create_failed":  "Could not publish the reply",
		"error.reply_fetch_failed":   "Could not load the reply",
		"error.reply_delete_failed":  "Could not delete the reply",
		"error.like_failed":          "Could not register the like",
		"error.like_target_invalid":  "Invalid like target",
		"error.stats_fetch_failed":   "Could not load the statistics",
		"error.reconcile_failed":     "Could not recompute the counters",
	},
}
