package domain

// ServiceTemplate is a starter service seeded at onboarding.
type ServiceTemplate struct {
	Name            string
	Description     string
	DurationMinutes int
	Price           int64
}

// ServiceTemplates holds the starter catalog per business category,
// priced in IDR.
var ServiceTemplates = map[BusinessCategory][]ServiceTemplate{
	CategoryBarbershop: {
		{Name: "Gentlemen Cut", Description: "Gunting + Keramas + Styling + Pijat Singkat", DurationMinutes: 45, Price: 50000},
		{Name: "Premium Shaving", Description: "Cukur Jenggot/Kumis dengan handuk hangat", DurationMinutes: 30, Price: 35000},
		{Name: "Hair Colouring Basic", Description: "Hitam / Dark Brown Only", DurationMinutes: 60, Price: 100000},
	},
	CategorySalon: {
		{Name: "Cuci Blow Variasi", Description: "Cuci rambut + styling blow", DurationMinutes: 45, Price: 60000},
		{Name: "Creambath Traditional", Description: "Pijat kepala & punggung", DurationMinutes: 60, Price: 85000},
		{Name: "Manicure / Pedicure", Description: "Perawatan kuku tangan/kaki", DurationMinutes: 60, Price: 75000},
	},
	CategoryDental: {
		{Name: "Konsultasi Dokter", Description: "Pemeriksaan awal", DurationMinutes: 30, Price: 100000},
		{Name: "Scaling", Description: "Pembersihan karang gigi", DurationMinutes: 60, Price: 350000},
		{Name: "Tambal Gigi", Description: "Per lubang gigi (Komposit)", DurationMinutes: 45, Price: 250000},
	},
	CategorySpa: {
		{Name: "Full Body Massage", Description: "Pijat seluruh badan", DurationMinutes: 90, Price: 200000},
		{Name: "Facial Treatment", Description: "Perawatan wajah lengkap", DurationMinutes: 60, Price: 150000},
		{Name: "Body Scrub", Description: "Lulur badan", DurationMinutes: 45, Price: 100000},
	},
	CategoryGym: {
		{Name: "Personal Training", Description: "Sesi latihan dengan trainer", DurationMinutes: 60, Price: 150000},
		{Name: "Group Class", Description: "Kelas fitness grup", DurationMinutes: 45, Price: 50000},
		{Name: "Assessment", Description: "Evaluasi kebugaran", DurationMinutes: 30, Price: 75000},
	},
	CategoryAuto: {
		{Name: "Servis Rutin", Description: "Ganti oli + cek mesin", DurationMinutes: 60, Price: 150000},
		{Name: "Tune Up", Description: "Servis lengkap mesin", DurationMinutes: 120, Price: 250000},
		{Name: "Cuci Motor/Mobil", Description: "Cuci exterior + interior", DurationMinutes: 30, Price: 35000},
	},
	CategoryTutor: {
		{Name: "Private Lesson", Description: "Belajar privat 1-on-1", DurationMinutes: 90, Price: 100000},
		{Name: "Group Lesson", Description: "Belajar kelompok max 3 orang", DurationMinutes: 90, Price: 75000},
		{Name: "Consultation", Description: "Konsultasi materi", DurationMinutes: 30, Price: 50000},
	},
	CategoryPhoto: {
		{Name: "Studio Portrait", Description: "Foto portrait studio", DurationMinutes: 60, Price: 250000},
		{Name: "Product Photo", Description: "Foto produk per item", DurationMinutes: 45, Price: 150000},
		{Name: "Event Coverage", Description: "Dokumentasi acara 3 jam", DurationMinutes: 180, Price: 1500000},
	},
	CategoryLaundry: {
		{Name: "Regular Wash", Description: "Cuci per kg, 1-2 hari", DurationMinutes: 1440, Price: 7000},
		{Name: "Express Wash", Description: "Cuci per kg, 6 jam", DurationMinutes: 360, Price: 15000},
		{Name: "Dry Clean", Description: "Dry cleaning per item", DurationMinutes: 2880, Price: 25000},
	},
	CategoryOther: {},
}
