package fields

func num(name, label string, def int) ConstraintSpec {
	return ConstraintSpec{Name: name, Kind: KindNumber, Label: label, Default: def}
}

func field(id, label, category string, gen GeneratorRef, constraints ...ConstraintSpec) FieldDefinition {
	if constraints == nil {
		constraints = []ConstraintSpec{}
	}
	return FieldDefinition{ID: id, Label: label, Category: category, Generator: gen, Constraints: constraints}
}

func withArgs(d FieldDefinition, a Args) FieldDefinition {
	d.FixedArgs = a
	return d
}

func withLocale(d FieldDefinition, code string) FieldDefinition {
	d.Locale = code
	return d
}

// Catalog returns the built-in field definitions in display order.
func Catalog() []FieldDefinition {
	return []FieldDefinition{
		// Identity
		field("first_name", "First Name", "Identity", GenFirstName),
		field("last_name", "Last Name", "Identity", GenLastName),
		field("full_name", "Full Name", "Identity", GenName),
		field("username", "Username", "Identity", GenUserName),
		withArgs(field("gender", "Gender", "Identity", GenRandomElement),
			Args{"elements": []any{"Male", "Female", "Other"}}),

		// Contact
		field("email", "Email", "Contact", GenEmail,
			ConstraintSpec{Name: "domain", Kind: KindText, Label: "Domain (optional)"}),
		field("safe_email", "Safe Email", "Contact", GenSafeEmail),
		field("phone", "Phone", "Contact", GenPhoneNumber),
		withLocale(field("phone_us", "Phone (US)", "Contact", GenPhoneNumber), "en_US"),
		withLocale(field("phone_in", "Phone (India)", "Contact", GenPhoneNumber), "en_IN"),

		// Dates & Time
		field("dob", "Date of Birth", "Dates & Time", GenDateOfBirth,
			num("min_age", "Min Age", defaultMinAge),
			num("max_age", "Max Age", defaultMaxAge)),
		field("age", "Age", "Dates & Time", GenRandomInt,
			num("min", "Minimum", 18),
			num("max", "Maximum", 65)),
		field("created_at", "Created At", "Dates & Time", GenDateTimeThisYear),
		field("updated_at", "Updated At", "Dates & Time", GenDateTimeThisMonth),

		// IDs & System
		field("uuid", "UUID", "IDs & System", GenUUID4),
		field("integer", "Integer", "IDs & System", GenRandomInt,
			num("min", "Minimum", 1),
			num("max", "Maximum", 1000)),
		field("boolean", "Boolean", "IDs & System", GenBoolean),
		field("enum", "Enum", "IDs & System", GenRandomElement,
			ConstraintSpec{Name: "values", Kind: KindText, Label: "Values (comma-separated)", Required: true}),

		// Text
		field("sentence", "Sentence", "Text", GenSentence, num("nb_words", "Number of Words", 6)),
		field("paragraph", "Paragraph", "Text", GenParagraph, num("nb_sentences", "Number of Sentences", 3)),
		field("description", "Description", "Text", GenText, num("max_nb_chars", "Max Characters", 200)),

		// Network
		field("ip", "IP Address", "Network", GenIPv4),
		field("ipv6", "IPv6 Address", "Network", GenIPv6),
		field("mac_address", "MAC Address", "Network", GenMacAddress),

		// Location
		field("city", "City", "Location", GenCity),
		field("state", "State", "Location", GenState),
		field("country", "Country", "Location", GenCountry),
		field("zip_code", "Zip Code", "Location", GenPostcode),
		field("latitude", "Latitude", "Location", GenLatitude),
		field("longitude", "Longitude", "Location", GenLongitude),

		// Web & System
		field("url", "URL", "Web", GenURL),
		field("user_agent", "User Agent", "Web", GenUserAgent),
		field("file_name", "File Name", "System", GenFileName),

		// Numbers
		withArgs(field("float", "Float", "IDs & System", GenPyFloat),
			Args{"min_value": 0, "max_value": 1000, "right_digits": 2}),
		withArgs(field("percentage", "Percentage", "IDs & System", GenPyFloat),
			Args{"min_value": 0, "max_value": 100, "right_digits": 2}),
		withArgs(field("rating", "Rating", "Finance", GenPyFloat),
			Args{"min_value": 1, "max_value": 5, "right_digits": 1}),

		// Security
		field("password", "Password", "Security", GenPassword, num("length", "Length", 12)),
		field("token", "Token", "Security", GenSHA256),

		// Analytics & Logs
		withArgs(field("http_status", "HTTP Status Code", "System", GenRandomElement),
			Args{"elements": []any{200, 201, 400, 401, 403, 404, 500}}),
		field("response_time_ms", "Response Time (ms)", "System", GenRandomInt,
			num("min", "Minimum", 50),
			num("max", "Maximum", 2000)),
		withArgs(field("request_method", "HTTP Method", "Analytics", GenRandomElement),
			Args{"elements": []any{"GET", "POST", "PUT", "PATCH", "DELETE"}}),
		field("endpoint", "API Endpoint", "Analytics", GenURIPath),

		// Business
		field("company", "Company Name", "Business", GenCompany),
		field("job_title", "Job Title", "Business", GenJob),

		// Media & Files
		field("image_url", "Image URL", "Media", GenImageURL),
		field("file_path", "File Path", "System", GenFilePath),

		field("unix_timestamp", "Unix Timestamp", "Dates & Time", GenUnixTime),
		field("middle_name", "Middle Name", "Identity", GenFirstName),
		field("street_address", "Street Address", "Location", GenStreetAddress),
		field("time_zone", "Time Zone", "Location", GenTimezone),
		field("referrer", "Referrer URL", "Web", GenURI),
		withArgs(field("log_level", "Log Level", "Analytics", GenRandomElement),
			Args{"elements": []any{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}}),
		field("phone_secondary", "Secondary Phone", "Contact", GenPhoneNumber),
		field("currency_code", "Currency Code", "Finance", GenCurrencyCode),
		field("tax_id", "Tax ID", "Finance", GenBBAN),
		field("bank_account", "Bank Account Number", "Finance", GenIBAN),
		field("color_hex", "Color (Hex)", "Misc", GenHexColor),
		field("emoji", "Emoji", "Misc", GenEmoji),
		field("slug", "Slug", "Misc", GenSlug),
		withArgs(field("sku", "Product SKU", "Business", GenBothify),
			Args{"text": "#??-##??"}),
	}
}
