package gemini

// PropertyLookupPromptTemplate drives the web-search pass. The %s is the
// user's free-text hotel query. The reply must be one JSON object shaped
// like a partially-populated property record plus candidate image URLs.
const PropertyLookupPromptTemplate = `You are a property data extraction assistant specializing in commercial real estate. Given a hotel name and/or address, search for information and return structured JSON.

Hotel to look up: "%s"

IMPORTANT - Search strategy:
1. First, search LoopNet for this property (e.g. "site:loopnet.com <hotel name>"). LoopNet listings have the most reliable building data: square footage, year built, stories, lot size, and construction details.
2. Also search CoStar, CREXi, and commercial real estate listing sites for additional property details.
3. Search the hotel brand's website and travel sites (TripAdvisor, Booking.com) for room count, amenities, and photos.
4. Search county property appraiser / tax assessor records for year built, square footage, and construction type if available.
5. Use Google Maps / street view results for exterior photos.

Return a JSON object with these fields:

- property_name (string)
- full_address (string)
- brand (string, e.g. "Marriott", "Hilton", "Independent")
- room_count (number)
- stories (number - from LoopNet/CRE listings if available, otherwise best estimate)
- year_built (number - from LoopNet/tax records if available)
- construction_type (string - from LoopNet/CRE data if available, otherwise estimate from brand standards and age: "Fire Resistive", "Modified Fire Resistive", "Non-Combustible", "Masonry Non-Combustible", "Joisted Masonry", or "Frame")
- square_footage (number - from LoopNet/tax records if available, otherwise estimate: rooms x 500-600 SF for limited-service, rooms x 700-900 SF for full-service)
- lot_size (number or null - lot size in acres if found on LoopNet or tax records)
- sprinklered (boolean - assume true for hotels built after 1990 or major brands)
- state (string - two-letter US state abbreviation)
- amenities (object with boolean fields: pool, restaurant, fitness_center, spa, business_center, meeting_space)
- confidence_level (string: "high" if key data from LoopNet/tax records, "medium" if from brand/travel sites, "low" if mostly estimated)
- data_sources (array of strings - list which sources you actually found data on, e.g. ["LoopNet", "TripAdvisor", "Marriott.com"])
- image_urls (array of strings - include up to 5 URLs of exterior photos of the building you found during search. Prioritize LoopNet listing photos, Google Maps street view, and hotel website exterior shots. These will be analyzed to verify construction type and story count.)

Return ONLY valid JSON. No markdown, no code blocks.`

// VisionAnalysisPromptTemplate drives the photo pass. The three %s/%d verbs
// are property name, address, and the text-search estimates for stories and
// construction type.
const VisionAnalysisPromptTemplate = `You are an expert commercial property insurance underwriter analyzing photos of a hotel property.

The property has been identified as: %s at %s
Current estimates from text search: %d stories, construction type: %s

Analyze the building photo(s) above and return a JSON object with ONLY these fields - provide your best assessment from what you can see:

- stories (number - count the visible floors carefully. Look for windows per floor, ground floor, roof structures)
- construction_type (string - one of: "Fire Resistive", "Modified Fire Resistive", "Non-Combustible", "Masonry Non-Combustible", "Joisted Masonry", "Frame". Look for: concrete/steel frame = Fire Resistive; brick/masonry walls with concrete = Masonry Non-Combustible; wood siding/frame = Frame; metal panels = Non-Combustible)
- roof_type (string - "flat", "pitched", "hip", "mansard", or "mixed")
- exterior_material (string - what you see: "brick", "stucco", "EIFS", "glass curtain wall", "concrete", "metal panel", "wood siding", "stone veneer", etc.)
- visible_amenities (object with booleans: pool, parking_structure, porte_cochere, solar_panels, outdoor_dining)
- estimated_condition (string: "excellent", "good", "fair", "poor")
- photo_notes (string - brief notes about anything relevant to insurance underwriting you observe)

Return ONLY valid JSON. No markdown, no code blocks.`
